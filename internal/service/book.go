package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/shelfwise/library-server-go/internal/errors"
	"github.com/shelfwise/library-server-go/internal/model"
	"github.com/shelfwise/library-server-go/internal/repository"
	"github.com/shelfwise/library-server-go/internal/util"
)

const (
	maxTitleLen  = 200
	maxAuthorLen = 100
)

// BookInput is the raw, unvalidated submission from either the HTML form
// or the JSON body.
type BookInput struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	PublishedDate string `json:"published_date"`
}

// ValidateBookInput converts a submission into storable params, or reports
// a field-error map. Both entry surfaces share this validator.
func ValidateBookInput(input BookInput) (model.BookParams, map[string]string) {
	fields := make(map[string]string)

	if input.Title == "" {
		fields["title"] = "Title is required"
	} else if len(input.Title) > maxTitleLen {
		fields["title"] = "Title must be 200 characters or fewer"
	}
	if input.Author == "" {
		fields["author"] = "Author is required"
	} else if len(input.Author) > maxAuthorLen {
		fields["author"] = "Author must be 100 characters or fewer"
	}
	if input.Description == "" {
		fields["description"] = "Description is required"
	}

	var params model.BookParams
	if input.PublishedDate == "" {
		fields["published_date"] = "Published date is required"
	} else {
		date, err := util.ParseDate(input.PublishedDate)
		if err != nil {
			fields["published_date"] = "Enter a valid date (YYYY-MM-DD)"
		} else {
			params.PublishedDate = date
		}
	}

	if len(fields) > 0 {
		return model.BookParams{}, fields
	}

	params.Title = input.Title
	params.Author = input.Author
	params.Description = input.Description
	return params, nil
}

type BookService struct {
	bookRepo repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

func (s *BookService) Create(ctx context.Context, input BookInput) (*model.Book, error) {
	params, fields := ValidateBookInput(input)
	if fields != nil {
		return nil, apperrors.ValidationFailed(fields)
	}

	book, err := s.bookRepo.Create(ctx, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().Int64("bookId", book.ID).Str("title", book.Title).Msg("book created")

	return book, nil
}

func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	books, err := s.bookRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, nil
}

func (s *BookService) Get(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if book == nil {
		return nil, apperrors.NotFound("Book")
	}
	return book, nil
}

func (s *BookService) Update(ctx context.Context, id int64, input BookInput) (*model.Book, error) {
	params, fields := ValidateBookInput(input)
	if fields != nil {
		return nil, apperrors.ValidationFailed(fields)
	}

	book, err := s.bookRepo.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if book == nil {
		return nil, apperrors.NotFound("Book")
	}

	log.Info().Int64("bookId", book.ID).Msg("book updated")

	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.bookRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Book")
	}

	log.Info().Int64("bookId", id).Msg("book deleted")

	return nil
}
