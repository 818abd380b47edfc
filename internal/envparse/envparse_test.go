package envparse_test

import (
	"testing"
	"time"

	"github.com/anima-music/anima/internal/envparse"
	. "github.com/onsi/gomega"
)

func TestPositiveDuration(t *testing.T) {
	g := NewWithT(t)

	d, err := envparse.PositiveDuration("10m")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(d).To(Equal(10 * time.Minute))

	_, err = envparse.PositiveDuration("-5s")
	g.Expect(err).To(HaveOccurred())

	_, err = envparse.PositiveDuration("soon")
	g.Expect(err).To(HaveOccurred())
}

func TestNonNegativeNumber(t *testing.T) {
	g := NewWithT(t)

	n, err := envparse.NonNegativeNumber("5")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(n).To(Equal(5))

	n, err = envparse.NonNegativeNumber("0")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(n).To(Equal(0))

	_, err = envparse.NonNegativeNumber("-1")
	g.Expect(err).To(HaveOccurred())
}

func TestMailAddress(t *testing.T) {
	g := NewWithT(t)

	addr, err := envparse.MailAddress("Ánima <no-reply@anima.example>")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(addr).To(Equal("no-reply@anima.example"))

	addr, err = envparse.MailAddress("no-reply@anima.example")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(addr).To(Equal("no-reply@anima.example"))

	_, err = envparse.MailAddress("not an address")
	g.Expect(err).To(HaveOccurred())
}
