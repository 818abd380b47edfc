package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anima-music/anima/internal/apierrors"
	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const passwordResetCodeOutExpr = `id, created_at, email, code, expires_at, consumed, attempts, reset_token`

// CreatePasswordResetCode inserts a fresh record. Callers must supersede the
// previous records of the email first (see SupersedePasswordResetCodes) so that
// at most one unconsumed record exists per email.
func CreatePasswordResetCode(
	ctx context.Context,
	email, code string,
	expiresAt time.Time,
) (*types.PasswordResetCode, error) {
	db := internalctx.GetDb(ctx)
	rows, err := db.Query(ctx,
		`WITH inserted AS (
			INSERT INTO PasswordResetCode (email, code, expires_at)
			VALUES (@email, @code, @expiresAt)
			RETURNING *
		)
		SELECT `+passwordResetCodeOutExpr+` FROM inserted`,
		pgx.NamedArgs{"email": email, "code": code, "expiresAt": expiresAt},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert PasswordResetCode: %w", err)
	}
	result, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[types.PasswordResetCode])
	if err != nil {
		return nil, fmt.Errorf("failed to collect PasswordResetCode: %w", err)
	}
	return &result, nil
}

// SupersedePasswordResetCodes consumes every outstanding code of the email
// without granting a reset token. Returns the number of invalidated records.
func SupersedePasswordResetCodes(ctx context.Context, email string) (int64, error) {
	db := internalctx.GetDb(ctx)
	cmd, err := db.Exec(ctx,
		`UPDATE PasswordResetCode SET consumed = TRUE
         WHERE email = @email AND consumed = FALSE`,
		pgx.NamedArgs{"email": email},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to supersede PasswordResetCode: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// GetActivePasswordResetCode returns the most recently created record of the
// email that is neither consumed nor expired.
func GetActivePasswordResetCode(ctx context.Context, email string) (*types.PasswordResetCode, error) {
	db := internalctx.GetDb(ctx)
	rows, err := db.Query(ctx,
		`SELECT `+passwordResetCodeOutExpr+` FROM PasswordResetCode
         WHERE email = @email AND consumed = FALSE AND expires_at > now()
         ORDER BY created_at DESC
         LIMIT 1`,
		pgx.NamedArgs{"email": email},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query PasswordResetCode: %w", err)
	}
	result, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[types.PasswordResetCode])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get PasswordResetCode: %w", err)
	}
	return &result, nil
}

// IncrementPasswordResetAttempts records one failed comparison and returns the
// new attempt count.
func IncrementPasswordResetAttempts(ctx context.Context, id uuid.UUID) (int, error) {
	db := internalctx.GetDb(ctx)
	var attempts int
	err := db.QueryRow(ctx,
		`UPDATE PasswordResetCode SET attempts = attempts + 1
         WHERE id = @id
         RETURNING attempts`,
		pgx.NamedArgs{"id": id},
	).Scan(&attempts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apierrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to increment attempts: %w", err)
	}
	return attempts, nil
}

// ConsumePasswordResetCode marks the record consumed and stores the reset token
// in one conditional update, so that concurrent verifications of the same code
// can succeed at most once. Racing callers get ErrAlreadyConsumed.
func ConsumePasswordResetCode(ctx context.Context, id uuid.UUID, resetToken uuid.UUID) error {
	db := internalctx.GetDb(ctx)
	cmd, err := db.Exec(ctx,
		`UPDATE PasswordResetCode
         SET consumed = TRUE, reset_token = @resetToken
         WHERE id = @id AND consumed = FALSE`,
		pgx.NamedArgs{"id": id, "resetToken": resetToken},
	)
	if err != nil {
		return fmt.Errorf("failed to consume PasswordResetCode: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return apierrors.ErrAlreadyConsumed
	}
	return nil
}

// InvalidatePasswordResetCode consumes the record without granting a token,
// used when the attempt limit is reached.
func InvalidatePasswordResetCode(ctx context.Context, id uuid.UUID) error {
	db := internalctx.GetDb(ctx)
	cmd, err := db.Exec(ctx,
		`UPDATE PasswordResetCode SET consumed = TRUE
         WHERE id = @id AND consumed = FALSE`,
		pgx.NamedArgs{"id": id},
	)
	if err != nil {
		return fmt.Errorf("failed to invalidate PasswordResetCode: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return apierrors.ErrAlreadyConsumed
	}
	return nil
}

// GetPasswordResetCodeByToken resolves a reset token to its record. Tokens are
// unique, the ORDER BY only guards against legacy duplicates.
func GetPasswordResetCodeByToken(ctx context.Context, resetToken uuid.UUID) (*types.PasswordResetCode, error) {
	db := internalctx.GetDb(ctx)
	rows, err := db.Query(ctx,
		`SELECT `+passwordResetCodeOutExpr+` FROM PasswordResetCode
         WHERE reset_token = @resetToken
         ORDER BY created_at DESC
         LIMIT 1`,
		pgx.NamedArgs{"resetToken": resetToken},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query PasswordResetCode by token: %w", err)
	}
	result, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[types.PasswordResetCode])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get PasswordResetCode by token: %w", err)
	}
	return &result, nil
}

// ClearPasswordResetToken invalidates a token after it has been spent, keeping
// the consumed record as audit trail. A token is spendable exactly once.
func ClearPasswordResetToken(ctx context.Context, id uuid.UUID) error {
	db := internalctx.GetDb(ctx)
	cmd, err := db.Exec(ctx,
		`UPDATE PasswordResetCode SET reset_token = NULL
         WHERE id = @id AND reset_token IS NOT NULL`,
		pgx.NamedArgs{"id": id},
	)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return apierrors.ErrAlreadyConsumed
	}
	return nil
}
