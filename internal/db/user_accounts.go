package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/anima-music/anima/internal/apierrors"
	internalctx "github.com/anima-music/anima/internal/context"
	"github.com/anima-music/anima/internal/env"
	"github.com/anima-music/anima/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userAccountOutExpr = `id, created_at, updated_at, email, display_name, status, last_login_at`

func GetUserAccountByID(ctx context.Context, id uuid.UUID) (*types.UserAccount, error) {
	db := internalctx.GetDb(ctx)
	rows, err := db.Query(ctx,
		`SELECT `+userAccountOutExpr+` FROM UserAccount WHERE id = @id`,
		pgx.NamedArgs{"id": id},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query UserAccount: %w", err)
	}
	result, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[types.UserAccount])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get UserAccount: %w", err)
	}
	return &result, nil
}

// CreateUserAccount registers a new account through the registrar_usuario
// database function, which encrypts the credential with pgp_sym_encrypt.
func CreateUserAccount(ctx context.Context, email, password string, displayName *string) (uuid.UUID, error) {
	db := internalctx.GetDb(ctx)
	var id uuid.UUID
	err := db.QueryRow(ctx,
		`SELECT registrar_usuario(@email, @password, @displayName, @key)`,
		pgx.NamedArgs{
			"email":       email,
			"password":    password,
			"displayName": displayName,
			"key":         env.AESKey(),
		},
	).Scan(&id)
	if err != nil {
		if pgErr := new(pgconn.PgError); errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return uuid.Nil, fmt.Errorf("%w: %w", apierrors.ErrAlreadyExists, err)
		}
		return uuid.Nil, fmt.Errorf("failed to register UserAccount: %w", err)
	}
	return id, nil
}

// VerifyLogin delegates the credential check to the verificar_login database
// function. A nil result means the credentials did not match any account.
func VerifyLogin(ctx context.Context, email, password string) (*uuid.UUID, error) {
	db := internalctx.GetDb(ctx)
	var id *uuid.UUID
	err := db.QueryRow(ctx,
		`SELECT verificar_login(@email, @password, @key)`,
		pgx.NamedArgs{"email": email, "password": password, "key": env.AESKey()},
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to verify login: %w", err)
	}
	return id, nil
}

func UpdateUserAccountLastLogin(ctx context.Context, id uuid.UUID) error {
	db := internalctx.GetDb(ctx)
	_, err := db.Exec(ctx,
		`UPDATE UserAccount SET last_login_at = now() WHERE id = @id`,
		pgx.NamedArgs{"id": id},
	)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// UpdateUserAccountPassword overwrites the encrypted credential of the account,
// using the same pgcrypto parameters registrar_usuario uses.
func UpdateUserAccountPassword(ctx context.Context, email, newPassword string) error {
	db := internalctx.GetDb(ctx)
	cmd, err := db.Exec(ctx,
		`UPDATE UserAccount
         SET password_enc = pgp_sym_encrypt(@password, @key, 'cipher-algo=aes256, compress-algo=1'),
             updated_at = now()
         WHERE email = @email`,
		pgx.NamedArgs{"password": newPassword, "key": env.AESKey(), "email": email},
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return apierrors.ErrNotFound
	}
	return nil
}

// UserAccountPasswordEquals decrypts the stored credential and compares it with
// the candidate. Used to reject a password change to the identical password.
func UserAccountPasswordEquals(ctx context.Context, email, candidate string) (bool, error) {
	db := internalctx.GetDb(ctx)
	var equal bool
	err := db.QueryRow(ctx,
		`SELECT pgp_sym_decrypt(password_enc, @key) = @candidate
         FROM UserAccount WHERE email = @email`,
		pgx.NamedArgs{"key": env.AESKey(), "candidate": candidate, "email": email},
	).Scan(&equal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apierrors.ErrNotFound
		}
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
	return equal, nil
}

func ExistsUserAccountWithEmail(ctx context.Context, email string) (bool, error) {
	db := internalctx.GetDb(ctx)
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM UserAccount WHERE email = @email)`,
		pgx.NamedArgs{"email": email},
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query UserAccount existence: %w", err)
	}
	return exists, nil
}
