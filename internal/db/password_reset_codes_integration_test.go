//go:build integration

package db_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/anima-music/anima/internal/apierrors"
	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func databaseCtx(t *testing.T) context.Context {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)
	ctx := internalctx.WithLogger(context.Background(), zap.NewNop())
	return internalctx.WithDb(ctx, pool)
}

func testEmail() string {
	return fmt.Sprintf("reset-%v@test.invalid", uuid.NewString())
}

func TestPasswordResetCodeLifecycle(t *testing.T) {
	g := NewWithT(t)
	ctx := databaseCtx(t)
	email := testEmail()

	first, err := db.CreatePasswordResetCode(ctx, email, "0042", time.Now().Add(10*time.Minute))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(first.Usable(time.Now())).To(BeTrue())

	active, err := db.GetActivePasswordResetCode(ctx, email)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(active.ID).To(Equal(first.ID))

	// a new request supersedes the outstanding code
	superseded, err := db.SupersedePasswordResetCodes(ctx, email)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(superseded).To(Equal(int64(1)))
	second, err := db.CreatePasswordResetCode(ctx, email, "7777", time.Now().Add(10*time.Minute))
	g.Expect(err).NotTo(HaveOccurred())

	active, err = db.GetActivePasswordResetCode(ctx, email)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(active.ID).To(Equal(second.ID))

	attempts, err := db.IncrementPasswordResetAttempts(ctx, second.ID)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(attempts).To(Equal(1))
	attempts, err = db.IncrementPasswordResetAttempts(ctx, second.ID)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(attempts).To(Equal(2))

	resetToken := uuid.New()
	g.Expect(db.ConsumePasswordResetCode(ctx, second.ID, resetToken)).To(Succeed())
	g.Expect(db.ConsumePasswordResetCode(ctx, second.ID, uuid.New())).
		To(MatchError(apierrors.ErrAlreadyConsumed))

	_, err = db.GetActivePasswordResetCode(ctx, email)
	g.Expect(err).To(MatchError(apierrors.ErrNotFound))

	byToken, err := db.GetPasswordResetCodeByToken(ctx, resetToken)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(byToken.ID).To(Equal(second.ID))
	g.Expect(byToken.Email).To(Equal(email))

	// the token is spendable exactly once
	g.Expect(db.ClearPasswordResetToken(ctx, second.ID)).To(Succeed())
	g.Expect(db.ClearPasswordResetToken(ctx, second.ID)).
		To(MatchError(apierrors.ErrAlreadyConsumed))
	_, err = db.GetPasswordResetCodeByToken(ctx, resetToken)
	g.Expect(err).To(MatchError(apierrors.ErrNotFound))
}

func TestPasswordResetCodeExpiry(t *testing.T) {
	g := NewWithT(t)
	ctx := databaseCtx(t)
	email := testEmail()

	expired, err := db.CreatePasswordResetCode(ctx, email, "1234", time.Now().Add(-time.Minute))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(expired.Usable(time.Now())).To(BeFalse())

	_, err = db.GetActivePasswordResetCode(ctx, email)
	g.Expect(err).To(MatchError(apierrors.ErrNotFound))
}

func TestInvalidatePasswordResetCode(t *testing.T) {
	g := NewWithT(t)
	ctx := databaseCtx(t)
	email := testEmail()

	code, err := db.CreatePasswordResetCode(ctx, email, "9999", time.Now().Add(10*time.Minute))
	g.Expect(err).NotTo(HaveOccurred())

	// invalidation consumes without granting a token
	g.Expect(db.InvalidatePasswordResetCode(ctx, code.ID)).To(Succeed())
	g.Expect(db.InvalidatePasswordResetCode(ctx, code.ID)).
		To(MatchError(apierrors.ErrAlreadyConsumed))
	_, err = db.GetActivePasswordResetCode(ctx, email)
	g.Expect(err).To(MatchError(apierrors.ErrNotFound))
}
