package mail

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestNewPasswordResetMail(t *testing.T) {
	g := NewWithT(t)

	resetMail, err := NewPasswordResetMail("user@example.com", "0042", 10*time.Minute)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(resetMail.To).To(Equal([]string{"user@example.com"}))
	g.Expect(resetMail.Subject).To(ContainSubstring("Recuperación de contraseña"))
	g.Expect(resetMail.TextBody).To(ContainSubstring("0042"))
	g.Expect(resetMail.TextBody).To(ContainSubstring("10 minutos"))
	g.Expect(resetMail.HtmlBody).To(ContainSubstring("0042"))
	g.Expect(resetMail.HtmlBody).To(ContainSubstring("10 minutos"))
}

func TestNewPasswordResetMail_RoundsTTL(t *testing.T) {
	g := NewWithT(t)

	resetMail, err := NewPasswordResetMail("user@example.com", "1234", 5*time.Minute+29*time.Second)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(resetMail.TextBody).To(ContainSubstring("5 minutos"))
}
