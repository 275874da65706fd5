// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package author

import (
	"context"
	"log/slog"

	"github.com/clefworks/partitura/internal/platform/validate"
	"github.com/clefworks/partitura/pkg/pointer"
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

func (service *Service) ListAuthors(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	return service.repo.ListAuthors(context, filter, limit, offset)
}

func (service *Service) GetAuthor(context context.Context, id int64) (*Author, error) {
	return service.repo.GetAuthor(context, id)
}

func (service *Service) CreateAuthor(context context.Context, author *Author) error {
	if err := validateAuthor(author); err != nil {
		return err
	}

	if err := service.repo.CreateAuthor(context, author); err != nil {
		return err
	}

	service.logger.Info("author_created", slog.String("name", author.Name))
	return nil
}

func (service *Service) UpdateAuthor(context context.Context, id int64, author *Author) error {
	author.ID = id
	if err := validateAuthor(author); err != nil {
		return err
	}

	if err := service.repo.UpdateAuthor(context, author); err != nil {
		return err
	}

	service.logger.Info("author_updated", slog.Int64("author_id", author.ID))
	return nil
}

func (service *Service) DeleteAuthor(context context.Context, id int64) error {
	if err := service.repo.DeleteAuthor(context, id); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.Int64("author_id", id))
	return nil
}

func validateAuthor(author *Author) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, author.Name).MaxLen(FieldName, author.Name, 100)
	if author.ContactNumber != nil && pointer.Val(author.ContactNumber) != "" {
		validator.PhoneNumber(FieldContactNumber, *author.ContactNumber)
	}

	return validator.Err()
}
