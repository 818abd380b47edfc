package types

import (
	"time"

	"github.com/google/uuid"
)

type UserAccountStatus string

const (
	UserAccountStatusActive   UserAccountStatus = "activo"
	UserAccountStatusDisabled UserAccountStatus = "deshabilitado"
)

type UserAccount struct {
	ID          uuid.UUID         `db:"id"`
	CreatedAt   time.Time         `db:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
	Email       string            `db:"email"`
	DisplayName *string           `db:"display_name"`
	Status      UserAccountStatus `db:"status"`
	LastLoginAt *time.Time        `db:"last_login_at"`
}
