package model

import (
	"time"
)

type AdminUser struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type CreateAdminUserParams struct {
	Email        string
	PasswordHash string
}

// AuthToken is the opaque API bearer token for an admin user.
// user_id is unique, so each admin holds at most one live token.
type AuthToken struct {
	ID        string    `db:"id" json:"-"`
	Token     string    `db:"token" json:"token"`
	TokenHash string    `db:"token_hash" json:"-"`
	UserID    string    `db:"user_id" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

type CreateAuthTokenParams struct {
	Token     string
	TokenHash string
	UserID    string
}
