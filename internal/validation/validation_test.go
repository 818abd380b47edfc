package validation_test

import (
	"testing"

	"github.com/anima-music/anima/internal/validation"
	. "github.com/onsi/gomega"
)

func TestNormalizeEmail(t *testing.T) {
	g := NewWithT(t)

	g.Expect(validation.NormalizeEmail("  User@Example.COM ")).To(Equal("user@example.com"))
	g.Expect(validation.NormalizeEmail("user@example.com")).To(Equal("user@example.com"))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"a@b.co", true},
		{"user+tag@sub.example.com", true},
		{"", false},
		{"user", false},
		{"user@example", false},
		{"user @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			g := NewWithT(t)
			err := validation.ValidateEmail(tt.email)
			if tt.valid {
				g.Expect(err).NotTo(HaveOccurred())
			} else {
				g.Expect(err).To(HaveOccurred())
				g.Expect(validation.IsValidationFailed(err)).To(BeTrue())
			}
		})
	}
}

func TestValidateResetCode(t *testing.T) {
	g := NewWithT(t)

	g.Expect(validation.ValidateResetCode("0000")).To(Succeed())
	g.Expect(validation.ValidateResetCode("1234")).To(Succeed())
	g.Expect(validation.ValidateResetCode("123")).NotTo(Succeed())
	g.Expect(validation.ValidateResetCode("12345")).NotTo(Succeed())
	g.Expect(validation.ValidateResetCode("12a4")).NotTo(Succeed())
	g.Expect(validation.ValidateResetCode("")).NotTo(Succeed())
	g.Expect(validation.ValidateResetCode(" 1234")).NotTo(Succeed())
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid", "Abcd123!", true},
		{"valid long", "Str0ng&Passw0rd", true},
		{"too short", "Ab1!", false},
		{"no uppercase", "abcd123!", false},
		{"no lowercase", "ABCD123!", false},
		{"no digit", "Abcdefg!", false},
		{"no symbol", "Abcd1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			err := validation.ValidatePassword(tt.password)
			if tt.valid {
				g.Expect(err).NotTo(HaveOccurred())
			} else {
				g.Expect(err).To(HaveOccurred())
				g.Expect(validation.Reason(err)).NotTo(BeEmpty())
			}
		})
	}
}

func TestReason_NotValidationError(t *testing.T) {
	g := NewWithT(t)

	g.Expect(validation.Reason(nil)).To(BeEmpty())
}
