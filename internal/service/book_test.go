package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shelfwise/library-server-go/internal/errors"
	"github.com/shelfwise/library-server-go/internal/model"
)

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *mockBookRepo) FindAll(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *mockBookRepo) Create(ctx context.Context, params model.BookParams) (*model.Book, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *mockBookRepo) Update(ctx context.Context, id int64, params model.BookParams) (*model.Book, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *mockBookRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var validInput = BookInput{
	Title:         "T",
	Author:        "A",
	Description:   "D",
	PublishedDate: "2020-01-01",
}

func TestValidateBookInput(t *testing.T) {
	t.Run("accepts a complete submission", func(t *testing.T) {
		params, fields := ValidateBookInput(validInput)

		assert.Nil(t, fields)
		assert.Equal(t, "T", params.Title)
		assert.Equal(t, "A", params.Author)
		assert.Equal(t, "D", params.Description)
		assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), params.PublishedDate)
	})

	t.Run("requires every field", func(t *testing.T) {
		_, fields := ValidateBookInput(BookInput{})

		require.NotNil(t, fields)
		assert.Contains(t, fields, "title")
		assert.Contains(t, fields, "author")
		assert.Contains(t, fields, "description")
		assert.Contains(t, fields, "published_date")
	})

	t.Run("rejects unparseable date", func(t *testing.T) {
		input := validInput
		input.PublishedDate = "January 1st"

		_, fields := ValidateBookInput(input)

		require.NotNil(t, fields)
		assert.Contains(t, fields, "published_date")
		assert.Len(t, fields, 1)
	})

	t.Run("rejects over-long title and author", func(t *testing.T) {
		input := validInput
		for i := 0; i < 30; i++ {
			input.Title += "0123456789"
			input.Author += "0123456789"
		}

		_, fields := ValidateBookInput(input)

		require.NotNil(t, fields)
		assert.Contains(t, fields, "title")
		assert.Contains(t, fields, "author")
	})
}

func TestBookService_CreateAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("create then list round-trips fields", func(t *testing.T) {
		repo := new(mockBookRepo)
		svc := NewBookService(repo)

		date := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		stored := model.Book{ID: 1, Title: "T", Author: "A", Description: "D", PublishedDate: date}

		repo.On("Create", ctx, model.BookParams{
			Title: "T", Author: "A", Description: "D", PublishedDate: date,
		}).Return(&stored, nil)
		repo.On("FindAll", ctx).Return([]model.Book{stored}, nil)

		created, err := svc.Create(ctx, validInput)
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)

		books, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "T", books[0].Title)
		assert.Equal(t, "A", books[0].Author)
		assert.Equal(t, "D", books[0].Description)
		assert.Equal(t, date, books[0].PublishedDate)
	})

	t.Run("create rejects invalid input without touching the store", func(t *testing.T) {
		repo := new(mockBookRepo)
		svc := NewBookService(repo)

		_, err := svc.Create(ctx, BookInput{})

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("list returns empty slice, not nil", func(t *testing.T) {
		repo := new(mockBookRepo)
		svc := NewBookService(repo)

		repo.On("FindAll", ctx).Return([]model.Book{}, nil)

		books, err := svc.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})
}

func TestBookService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns not found for unknown id", func(t *testing.T) {
		repo := new(mockBookRepo)
		svc := NewBookService(repo)

		repo.On("FindByID", ctx, int64(99)).Return(nil, nil)

		_, err := svc.Get(ctx, 99)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})
}

func TestBookService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("returns not found for unknown id", func(t *testing.T) {
		repo := new(mockBookRepo)
		svc := NewBookService(repo)

		repo.On("Update", ctx, int64(99), mock.Anything).Return(nil, nil)

		_, err := svc.Update(ctx, 99, validInput)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})

	t.Run("rejects invalid input before the store", func(t *testing.T) {
		repo := new(mockBookRepo)
		svc := NewBookService(repo)

		input := validInput
		input.Title = ""

		_, err := svc.Update(ctx, 1, input)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing book", func(t *testing.T) {
		repo := new(mockBookRepo)
		svc := NewBookService(repo)

		repo.On("Delete", ctx, int64(1)).Return(true, nil)

		err := svc.Delete(ctx, 1)
		require.NoError(t, err)
	})

	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo := new(mockBookRepo)
		svc := NewBookService(repo)

		repo.On("Delete", ctx, int64(99)).Return(false, nil)

		err := svc.Delete(ctx, 99)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})
}
