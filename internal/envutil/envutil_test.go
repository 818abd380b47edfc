package envutil_test

import (
	"strconv"
	"testing"

	"github.com/anima-music/anima/internal/envutil"
	. "github.com/onsi/gomega"
)

func TestGetEnvOrDefault(t *testing.T) {
	g := NewWithT(t)

	t.Setenv("ENVUTIL_TEST_SET", "value")
	g.Expect(envutil.GetEnvOrDefault("ENVUTIL_TEST_SET", "fallback")).To(Equal("value"))
	g.Expect(envutil.GetEnvOrDefault("ENVUTIL_TEST_UNSET", "fallback")).To(Equal("fallback"))
}

func TestGetEnvOrNil(t *testing.T) {
	g := NewWithT(t)

	t.Setenv("ENVUTIL_TEST_SET", "value")
	g.Expect(envutil.GetEnvOrNil("ENVUTIL_TEST_SET")).To(HaveValue(Equal("value")))
	g.Expect(envutil.GetEnvOrNil("ENVUTIL_TEST_UNSET")).To(BeNil())
}

func TestGetEnvParsedOrDefault(t *testing.T) {
	g := NewWithT(t)

	t.Setenv("ENVUTIL_TEST_NUM", "42")
	g.Expect(envutil.GetEnvParsedOrDefault("ENVUTIL_TEST_NUM", strconv.Atoi, 7)).To(Equal(42))
	g.Expect(envutil.GetEnvParsedOrDefault("ENVUTIL_TEST_UNSET", strconv.Atoi, 7)).To(Equal(7))
}

func TestRequireEnv_Panics(t *testing.T) {
	g := NewWithT(t)

	g.Expect(func() { envutil.RequireEnv("ENVUTIL_TEST_MISSING") }).To(Panic())
}
