// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package book

import (
	"context"
	"log/slog"

	"github.com/clefworks/partitura/internal/platform/validate"
	"github.com/clefworks/partitura/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListBooks(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	if filter.BookType != "" && !filter.BookType.Valid() {
		validator := &validate.Validator{}
		validator.OneOf(FieldBookType, string(filter.BookType), string(TypeGeneral), string(TypePiece), string(TypeScore))
		return nil, 0, validator.Err()
	}

	return service.repo.ListBooks(context, filter, limit, offset)
}

func (service *Service) GetBook(context context.Context, id int64) (*Book, error) {
	return service.repo.GetBook(context, id)
}

func (service *Service) GetBookBySlug(context context.Context, bookSlug string) (*Book, error) {
	return service.repo.GetBookBySlug(context, bookSlug)
}

func (service *Service) CreateBook(context context.Context, book *Book) error {
	if err := validateBook(book); err != nil {
		return err
	}

	// Slugs derive from the title; a duplicate title surfaces as a Conflict
	// from the unique index.
	book.Slug = slug.From(book.Title)

	if err := service.repo.CreateBook(context, book); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.Int64("book_id", book.ID),
		slog.String("title", book.Title),
		slog.String("book_type", string(book.BookType)),
	)
	return nil
}

func (service *Service) UpdateBook(context context.Context, id int64, book *Book) error {
	book.ID = id
	if err := validateBook(book); err != nil {
		return err
	}

	book.Slug = slug.From(book.Title)

	if err := service.repo.UpdateBook(context, book); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.Int64("book_id", book.ID))
	return nil
}

func (service *Service) DeleteBook(context context.Context, id int64) error {
	if err := service.repo.DeleteBook(context, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.Int64("book_id", id))
	return nil
}

func validateBook(book *Book) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, book.Title).MaxLen(FieldTitle, book.Title, 200)
	validator.OneOf(FieldBookType, string(book.BookType), string(TypeGeneral), string(TypePiece), string(TypeScore))
	validator.Positive(FieldCategoryID, book.CategoryID)

	for _, authorID := range book.AuthorIDs {
		if authorID <= 0 {
			validator.Custom(FieldAuthorIDs, true, "All author ids must be positive")
			break
		}
	}

	return validator.Err()
}
