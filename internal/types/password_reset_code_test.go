package types_test

import (
	"testing"
	"time"

	"github.com/anima-music/anima/internal/types"
	. "github.com/onsi/gomega"
)

func TestPasswordResetCodeUsable(t *testing.T) {
	g := NewWithT(t)
	now := time.Now()

	fresh := types.PasswordResetCode{ExpiresAt: now.Add(10 * time.Minute)}
	g.Expect(fresh.Usable(now)).To(BeTrue())

	expired := types.PasswordResetCode{ExpiresAt: now.Add(-time.Second)}
	g.Expect(expired.Usable(now)).To(BeFalse())

	consumed := types.PasswordResetCode{ExpiresAt: now.Add(10 * time.Minute), Consumed: true}
	g.Expect(consumed.Usable(now)).To(BeFalse())
}

func TestParseCaptureMethod(t *testing.T) {
	g := NewWithT(t)

	for _, alias := range []string{"camara", "webcam", "camera"} {
		method, err := types.ParseCaptureMethod(alias)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(method).To(Equal(types.CaptureMethodCamera))
	}
	for _, alias := range []string{"subida_imagen", "upload", "file", "archivo", "imagen", "image", "subida"} {
		method, err := types.ParseCaptureMethod(alias)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(method).To(Equal(types.CaptureMethodUpload))
	}

	_, err := types.ParseCaptureMethod("telepathy")
	g.Expect(err).To(HaveOccurred())
	_, err = types.ParseCaptureMethod("")
	g.Expect(err).To(HaveOccurred())
}
