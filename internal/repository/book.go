package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/shelfwise/library-server-go/internal/model"
)

type BookRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	FindAll(ctx context.Context) ([]model.Book, error)
	Create(ctx context.Context, params model.BookParams) (*model.Book, error)
	Update(ctx context.Context, id int64, params model.BookParams) (*model.Book, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type bookRepo struct {
	db *sqlx.DB
}

func NewBookRepository(db *sqlx.DB) BookRepository {
	return &bookRepo{db: db}
}

func (r *bookRepo) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	var book model.Book
	err := r.db.GetContext(ctx, &book, `SELECT * FROM books WHERE id = $1`, id)
	return HandleNotFound(&book, err)
}

func (r *bookRepo) FindAll(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	err := r.db.SelectContext(ctx, &books, `SELECT * FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepo) Create(ctx context.Context, params model.BookParams) (*model.Book, error) {
	var book model.Book
	err := r.db.GetContext(ctx, &book, `
		INSERT INTO books (title, author, description, published_date)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.Title, params.Author, params.Description, params.PublishedDate)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepo) Update(ctx context.Context, id int64, params model.BookParams) (*model.Book, error) {
	var book model.Book
	err := r.db.GetContext(ctx, &book, `
		UPDATE books
		SET title = $2, author = $3, description = $4, published_date = $5
		WHERE id = $1
		RETURNING *
	`, id, params.Title, params.Author, params.Description, params.PublishedDate)
	return HandleNotFound(&book, err)
}

func (r *bookRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
