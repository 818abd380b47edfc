package mapping_test

import (
	"strconv"
	"testing"

	"github.com/anima-music/anima/internal/mapping"
	. "github.com/onsi/gomega"
)

func TestList(t *testing.T) {
	g := NewWithT(t)

	result := mapping.List([]int{1, 2, 3}, strconv.Itoa)
	g.Expect(result).To(Equal([]string{"1", "2", "3"}))

	g.Expect(mapping.List(nil, strconv.Itoa)).To(BeEmpty())
}

func TestPtrOrNil(t *testing.T) {
	g := NewWithT(t)

	value := 7
	result := mapping.PtrOrNil(&value, strconv.Itoa)
	g.Expect(result).NotTo(BeNil())
	g.Expect(*result).To(Equal("7"))

	g.Expect(mapping.PtrOrNil(nil, strconv.Itoa)).To(BeNil())
}
