//go:build integration

package db_test

import (
	"encoding/base64"
	"testing"

	"github.com/anima-music/anima/internal/db"
	"github.com/anima-music/anima/internal/env"
	. "github.com/onsi/gomega"
)

func TestUserAccountPasswordRoundTrip(t *testing.T) {
	g := NewWithT(t)
	ctx := databaseCtx(t)
	t.Setenv("JWT_SECRET", base64.StdEncoding.EncodeToString([]byte("integration-secret")))
	t.Setenv("AES_KEY", "integration-key")
	env.Initialize()
	email := testEmail()

	id, err := db.CreateUserAccount(ctx, email, "Anima123!", nil)
	g.Expect(err).NotTo(HaveOccurred())

	loginID, err := db.VerifyLogin(ctx, email, "Anima123!")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(loginID).NotTo(BeNil())
	g.Expect(*loginID).To(Equal(id))

	equal, err := db.UserAccountPasswordEquals(ctx, email, "Anima123!")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(equal).To(BeTrue())
	equal, err = db.UserAccountPasswordEquals(ctx, email, "Otra456$x")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(equal).To(BeFalse())

	g.Expect(db.UpdateUserAccountPassword(ctx, email, "Nueva456$")).To(Succeed())
	equal, err = db.UserAccountPasswordEquals(ctx, email, "Nueva456$")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(equal).To(BeTrue())

	// the old credential no longer logs in
	loginID, err = db.VerifyLogin(ctx, email, "Anima123!")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(loginID).To(BeNil())
}
