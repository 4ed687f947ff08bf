package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/shelfwise/library-server-go/internal/model"
)

type AuthTokenRepository interface {
	FindByUserID(ctx context.Context, userID string) (*model.AuthToken, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.AuthToken, error)
	Create(ctx context.Context, params model.CreateAuthTokenParams) (*model.AuthToken, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type authTokenRepo struct {
	db *sqlx.DB
}

func NewAuthTokenRepository(db *sqlx.DB) AuthTokenRepository {
	return &authTokenRepo{db: db}
}

func (r *authTokenRepo) FindByUserID(ctx context.Context, userID string) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.GetContext(ctx, &token, `SELECT * FROM auth_tokens WHERE user_id = $1`, userID)
	return HandleNotFound(&token, err)
}

func (r *authTokenRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.GetContext(ctx, &token, `SELECT * FROM auth_tokens WHERE token_hash = $1`, tokenHash)
	return HandleNotFound(&token, err)
}

func (r *authTokenRepo) Create(ctx context.Context, params model.CreateAuthTokenParams) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.GetContext(ctx, &token, `
		INSERT INTO auth_tokens (token, token_hash, user_id)
		VALUES ($1, $2, $3)
		RETURNING *
	`, params.Token, params.TokenHash, params.UserID)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	return err
}
