package types

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetCode is one entry of the append-only reset code history of an
// email address. Records are consumed (never deleted), either by a successful
// verification, by being superseded through a newer code request, or by
// exhausting the allowed attempts.
type PasswordResetCode struct {
	ID         uuid.UUID  `db:"id"`
	CreatedAt  time.Time  `db:"created_at"`
	Email      string     `db:"email"`
	Code       string     `db:"code"`
	ExpiresAt  time.Time  `db:"expires_at"`
	Consumed   bool       `db:"consumed"`
	Attempts   int        `db:"attempts"`
	ResetToken *uuid.UUID `db:"reset_token"`
}

// Usable reports whether the record can still be matched by a verification.
func (c PasswordResetCode) Usable(now time.Time) bool {
	return !c.Consumed && c.ExpiresAt.After(now)
}
