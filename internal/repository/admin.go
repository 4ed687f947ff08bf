package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/shelfwise/library-server-go/internal/model"
)

type AdminUserRepository interface {
	FindByID(ctx context.Context, id string) (*model.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error)
}

type adminUserRepo struct {
	db *sqlx.DB
}

func NewAdminUserRepository(db *sqlx.DB) AdminUserRepository {
	return &adminUserRepo{db: db}
}

func (r *adminUserRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `SELECT * FROM admin_users WHERE id = $1`, id)
	return HandleNotFound(&user, err)
}

func (r *adminUserRepo) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `SELECT * FROM admin_users WHERE email = $1`, email)
	return HandleNotFound(&user, err)
}

func (r *adminUserRepo) Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `
		INSERT INTO admin_users (email, password_hash)
		VALUES ($1, $2)
		RETURNING *
	`, params.Email, params.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
