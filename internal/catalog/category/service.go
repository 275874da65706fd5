// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package category

import (
	"context"
	"log/slog"

	"github.com/clefworks/partitura/internal/platform/validate"
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

// ListCategories returns the full tree; the set is small enough that we never
// paginate it.
func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.repo.ListCategories(context)
}

func (service *Service) GetCategory(context context.Context, id int64) (*Category, error) {
	return service.repo.GetCategory(context, id)
}

func (service *Service) CreateCategory(context context.Context, category *Category) error {
	if err := validateCategory(category); err != nil {
		return err
	}

	if err := service.repo.CreateCategory(context, category); err != nil {
		return err
	}

	service.logger.Info("category_created",
		slog.String("major", category.Major),
		slog.String("minor", category.Minor),
	)
	return nil
}

func (service *Service) UpdateCategory(context context.Context, id int64, category *Category) error {
	category.ID = id
	if err := validateCategory(category); err != nil {
		return err
	}

	if err := service.repo.UpdateCategory(context, category); err != nil {
		return err
	}

	service.logger.Info("category_updated", slog.Int64("category_id", category.ID))
	return nil
}

func (service *Service) DeleteCategory(context context.Context, id int64) error {
	if err := service.repo.DeleteCategory(context, id); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.Int64("category_id", id))
	return nil
}

func validateCategory(category *Category) error {
	validator := &validate.Validator{}

	validator.Required(FieldMajor, category.Major).MaxLen(FieldMajor, category.Major, 50)
	validator.Required(FieldMinor, category.Minor).MaxLen(FieldMinor, category.Minor, 50)

	return validator.Err()
}
