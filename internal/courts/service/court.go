package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	courtserrors "courtly/internal/courts/errors"
	"courtly/internal/courts/repository"
	"courtly/internal/courts/validator"
	"courtly/pkg/config"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/model"
	"courtly/pkg/sanitizer"
)

type CourtService interface {
	Create(ctx context.Context, court *model.Court) error
	GetByID(ctx context.Context, id string) (*model.Court, error)
	GetAll(ctx context.Context, active *bool, limit int, offset int64) ([]*model.Court, int64, error)
	Update(ctx context.Context, id string, updates *model.CourtUpdate) (*model.Court, error)
	Delete(ctx context.Context, id string) error
}

// BookingCounter reports how many bookings reference a court.
type BookingCounter interface {
	CountByCourt(ctx context.Context, courtID string) (int64, error)
}

type courtService struct {
	repo      repository.CourtRepository
	bookings  BookingCounter
	validator *validator.CourtValidator
	cfg       *config.Config
}

func NewCourtService(
	repo repository.CourtRepository,
	bookings BookingCounter,
	validator *validator.CourtValidator,
	cfg *config.Config,
) CourtService {
	return &courtService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *courtService) Create(ctx context.Context, court *model.Court) error {
	court.ID = ""
	court.IsActive = true
	sanitize(court)

	if err := s.validate(court); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, court); err != nil {
		if errors.Is(err, courtserrors.ErrDuplicateName) {
			return apperrors.Conflict(fmt.Sprintf("Court named %q already exists", court.Name))
		}
		s.cfg.Log.Error("Failed to create court", "name", court.Name, "error", err)
		return apperrors.Internal("Failed to create court", err)
	}

	s.cfg.Log.Info("Court created successfully", "id", court.ID, "name", court.Name)
	return nil
}

func (s *courtService) GetByID(ctx context.Context, id string) (*model.Court, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Court ID cannot be empty")
	}

	court, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve court")
	}
	return court, nil
}

func (s *courtService) GetAll(ctx context.Context, active *bool, limit int, offset int64) ([]*model.Court, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var courts []*model.Court
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, active)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count courts", "error", errCount)
			errCount = apperrors.Internal("Failed to count courts", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		courts, errFind = s.repo.FindAll(ctx, active, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list courts", "limit", limit, "offset", offset, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve courts", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return courts, count, nil
}

func (s *courtService) Update(ctx context.Context, id string, updates *model.CourtUpdate) (*model.Court, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Court ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to check court existence")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Court update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"errors": err})
	}

	merged := mergeCourtUpdates(existing, updates)
	sanitize(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, courtserrors.ErrDuplicateName) {
			return nil, apperrors.Conflict(fmt.Sprintf("Court named %q already exists", merged.Name))
		}
		return nil, s.mapRepoError(err, id, "Failed to update court")
	}

	s.cfg.Log.Info("Court updated successfully", "id", id)
	return merged, nil
}

func (s *courtService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Court ID cannot be empty")
	}

	if s.bookings != nil {
		n, err := s.bookings.CountByCourt(ctx, id)
		if err != nil {
			return apperrors.Internal("Failed to check court bookings", err)
		}
		if n > 0 {
			return apperrors.Conflict(fmt.Sprintf("Court has %d booking(s); delete them first or deactivate the court", n))
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete court")
	}

	s.cfg.Log.Info("Court deleted successfully", "id", id)
	return nil
}

func (s *courtService) mapRepoError(err error, id, msg string) error {
	switch {
	case errors.Is(err, courtserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Court", id)
	case errors.Is(err, courtserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid court ID format")
	default:
		s.cfg.Log.Error(msg, "id", id, "error", err)
		return apperrors.Internal(msg, err)
	}
}

func (s *courtService) validate(court *model.Court) error {
	if err := s.validator.Validate(court); err != nil {
		s.cfg.Log.Warn("Court validation failed", "name", court.Name, "error", err)
		return apperrors.Validation("Court validation failed", map[string]any{"errors": err})
	}
	return nil
}

func sanitize(c *model.Court) {
	c.Name = sanitizer.NormalizeName(c.Name)
	c.Description = sanitizer.TrimAndNormalize(c.Description)
	c.HourlyRate = c.HourlyRate.RoundCents()
	c.LightSurcharge = c.LightSurcharge.RoundCents()
}

func mergeCourtUpdates(existing *model.Court, updates *model.CourtUpdate) *model.Court {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.HourlyRate != nil {
		merged.HourlyRate = *updates.HourlyRate
	}
	if updates.LightSurcharge != nil {
		merged.LightSurcharge = *updates.LightSurcharge
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	if updates.OperatingHours != nil {
		merged.OperatingHours = *updates.OperatingHours
	}

	return &merged
}
