package security_test

import (
	"strconv"
	"testing"

	"github.com/anima-music/anima/internal/security"
	. "github.com/onsi/gomega"
)

func TestGenerateResetCode(t *testing.T) {
	g := NewWithT(t)

	code, err := security.GenerateResetCode()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(code).To(HaveLen(4))
	g.Expect(code).To(MatchRegexp("^[0-9]{4}$"))
}

func TestGenerateResetCode_LeadingZeros(t *testing.T) {
	g := NewWithT(t)

	// with 200 draws the chance of never hitting a code below 1000 is ~10^-10
	seenShort := false
	for range 200 {
		code, err := security.GenerateResetCode()
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(code).To(HaveLen(4))
		n, err := strconv.Atoi(code)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(n).To(And(BeNumerically(">=", 0), BeNumerically("<", 10000)))
		if n < 1000 {
			seenShort = true
		}
	}
	g.Expect(seenShort).To(BeTrue(), "no code below 1000 in 200 draws, padding is likely broken")
}

func TestGenerateResetCode_Varies(t *testing.T) {
	g := NewWithT(t)

	seen := make(map[string]bool)
	for range 50 {
		code, err := security.GenerateResetCode()
		g.Expect(err).NotTo(HaveOccurred())
		seen[code] = true
	}
	g.Expect(len(seen)).To(BeNumerically(">", 1))
}
