// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package composer

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

// # Composers

func (service *Service) ListComposers(context context.Context, filter Filter, limit, offset int) ([]*Composer, int, error) {
	return service.repo.ListComposers(context, filter, limit, offset)
}

func (service *Service) GetComposer(context context.Context, id int64) (*Composer, error) {
	return service.repo.GetComposer(context, id)
}

func (service *Service) CreateComposer(context context.Context, composer *Composer) error {
	if err := validateComposer(composer); err != nil {
		return err
	}

	if err := service.repo.CreateComposer(context, composer); err != nil {
		return err
	}

	service.logger.Info("composer_created", slog.String("name", composer.Name))
	return nil
}

func (service *Service) UpdateComposer(context context.Context, id int64, composer *Composer) error {
	composer.ID = id
	if err := validateComposer(composer); err != nil {
		return err
	}

	if err := service.repo.UpdateComposer(context, composer); err != nil {
		return err
	}

	service.logger.Info("composer_updated", slog.Int64("composer_id", composer.ID))
	return nil
}

func (service *Service) DeleteComposer(context context.Context, id int64) error {
	if err := service.repo.DeleteComposer(context, id); err != nil {
		return err
	}

	service.logger.Warn("composer_deleted", slog.Int64("composer_id", id))
	return nil
}

// # Works

func (service *Service) ListWorksForBook(context context.Context, bookID int64) ([]*Work, error) {
	return service.repo.ListWorksForBook(context, bookID)
}

func (service *Service) CreateWork(context context.Context, work *Work) error {
	if err := validateWork(work); err != nil {
		return err
	}

	// The (composer, book) pair is unique; a duplicate surfaces as a Conflict
	// from the storage layer.
	if err := service.repo.CreateWork(context, work); err != nil {
		return err
	}

	service.logger.Info("composer_work_created",
		slog.Int64("composer_id", work.ComposerID),
		slog.Int64("book_id", work.BookID),
		slog.String("royalty_percentage", work.RoyaltyPercentage.String()),
	)
	return nil
}

func (service *Service) UpdateWork(context context.Context, id int64, work *Work) error {
	work.ID = id
	if err := validateWork(work); err != nil {
		return err
	}

	if err := service.repo.UpdateWork(context, work); err != nil {
		return err
	}

	service.logger.Info("composer_work_updated", slog.Int64("work_id", work.ID))
	return nil
}

func (service *Service) DeleteWork(context context.Context, id int64) error {
	if err := service.repo.DeleteWork(context, id); err != nil {
		return err
	}

	service.logger.Warn("composer_work_deleted", slog.Int64("work_id", id))
	return nil
}

func validateComposer(composer *Composer) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, composer.Name).MaxLen(FieldName, composer.Name, 100)
	if composer.ContactNumber != nil && pointer.Val(composer.ContactNumber) != "" {
		validator.PhoneNumber(FieldContactNumber, *composer.ContactNumber)
	}

	return validator.Err()
}

func validateWork(work *Work) error {
	validator := &validate.Validator{}

	validator.Positive(FieldComposerID, work.ComposerID)
	validator.Positive(FieldBookID, work.BookID)
	validator.Custom(FieldNumberOfSongs, work.NumberOfSongs < 1, "Must be at least 1")
	validator.Percentage(FieldRoyaltyPercentage, work.RoyaltyPercentage)

	return validator.Err()
}
