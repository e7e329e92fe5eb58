package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tenantserrors "courtly/internal/tenants/errors"
	"courtly/internal/tenants/repository"
	"courtly/internal/tenants/validator"
	"courtly/pkg/config"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/model"
	"courtly/pkg/sanitizer"
)

type TenantService interface {
	Create(ctx context.Context, req *model.TenantCreate) (*model.Tenant, error)
	GetByID(ctx context.Context, id string) (*model.Tenant, error)
	GetAll(ctx context.Context, filter model.TenantFilter, limit int, offset int64) ([]*model.Tenant, int64, error)
	Update(ctx context.Context, id string, updates *model.TenantUpdate) (*model.Tenant, error)
	Delete(ctx context.Context, id string) error
}

// BookingCounter reports how many bookings reference a tenant.
type BookingCounter interface {
	CountByTenant(ctx context.Context, tenantID string) (int64, error)
}

type tenantService struct {
	repo      repository.TenantRepository
	bookings  BookingCounter
	validator *validator.TenantValidator
	cfg       *config.Config
}

// NewTenantService builds the service. bookings may be nil, in which case
// tenants are deleted without checking for references.
func NewTenantService(
	repo repository.TenantRepository,
	bookings BookingCounter,
	validator *validator.TenantValidator,
	cfg *config.Config,
) TenantService {
	return &tenantService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *tenantService) Create(ctx context.Context, req *model.TenantCreate) (*model.Tenant, error) {
	tenant := req.Tenant(s.cfg.DefaultBookingLimit)
	s.sanitize(tenant)

	if err := s.validate(tenant); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tenant); err != nil {
		if errors.Is(err, tenantserrors.ErrDuplicateTenantID) {
			return nil, apperrors.Conflict(fmt.Sprintf("Tenant with tenant_id %q already exists", tenant.TenantID))
		}
		s.cfg.Log.Error("Failed to create tenant", "tenant_id", tenant.TenantID, "error", err)
		return nil, apperrors.Internal("Failed to create tenant", err)
	}

	s.cfg.Log.Info("Tenant created successfully", "id", tenant.ID, "tenant_id", tenant.TenantID)
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Tenant ID cannot be empty")
	}

	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve tenant")
	}
	return tenant, nil
}

func (s *tenantService) GetAll(ctx context.Context, filter model.TenantFilter, limit int, offset int64) ([]*model.Tenant, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)
	filter.Tower = sanitizer.NormalizeCode(filter.Tower)
	filter.Unit = sanitizer.NormalizeCode(filter.Unit)

	var count int64
	var tenants []*model.Tenant
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count tenants", "error", errCount)
			errCount = apperrors.Internal("Failed to count tenants", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		tenants, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list tenants", "limit", limit, "offset", offset, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve tenants", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return tenants, count, nil
}

func (s *tenantService) Update(ctx context.Context, id string, updates *model.TenantUpdate) (*model.Tenant, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Tenant ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to check tenant existence")
	}

	s.sanitizeUpdate(updates)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Tenant update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"errors": err})
	}

	merged := mergeTenantUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update tenant")
	}

	s.cfg.Log.Info("Tenant updated successfully", "id", id)
	return merged, nil
}

func (s *tenantService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Tenant ID cannot be empty")
	}

	if s.bookings != nil {
		n, err := s.bookings.CountByTenant(ctx, id)
		if err != nil {
			return apperrors.Internal("Failed to check tenant bookings", err)
		}
		if n > 0 {
			return apperrors.Conflict(fmt.Sprintf("Tenant has %d booking(s); delete them first or deactivate the tenant", n))
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete tenant")
	}

	s.cfg.Log.Info("Tenant deleted successfully", "id", id)
	return nil
}

func (s *tenantService) mapRepoError(err error, id, msg string) error {
	switch {
	case errors.Is(err, tenantserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Tenant", id)
	case errors.Is(err, tenantserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid tenant ID format")
	default:
		s.cfg.Log.Error(msg, "id", id, "error", err)
		return apperrors.Internal(msg, err)
	}
}

func (s *tenantService) sanitize(t *model.Tenant) {
	t.TenantID = sanitizer.TrimAndNormalize(t.TenantID)
	t.Name = sanitizer.NormalizeName(t.Name)
	t.Email = sanitizer.NormalizeEmail(t.Email)
	t.Phone = sanitizer.NormalizePhone(t.Phone, s.cfg.DefaultPhoneRegion)
	t.Tower = sanitizer.NormalizeCode(t.Tower)
	t.Unit = sanitizer.NormalizeCode(t.Unit)
	t.ProfilePicture = sanitizer.NormalizeURL(t.ProfilePicture)
}

func (s *tenantService) sanitizeUpdate(u *model.TenantUpdate) {
	u.Name = sanitizer.NormalizeName(u.Name)
	u.Email = sanitizer.NormalizeEmail(u.Email)
	u.Phone = sanitizer.NormalizePhone(u.Phone, s.cfg.DefaultPhoneRegion)
	u.Tower = sanitizer.NormalizeCode(u.Tower)
	u.Unit = sanitizer.NormalizeCode(u.Unit)
	if u.ProfilePicture != nil {
		normalized := sanitizer.NormalizeURL(*u.ProfilePicture)
		u.ProfilePicture = &normalized
	}
}

func (s *tenantService) validate(tenant *model.Tenant) error {
	if err := s.validator.Validate(tenant); err != nil {
		s.cfg.Log.Warn("Tenant validation failed", "tenant_id", tenant.TenantID, "error", err)
		return apperrors.Validation("Tenant validation failed", map[string]any{"errors": err})
	}
	return nil
}

func mergeTenantUpdates(existing *model.Tenant, updates *model.TenantUpdate) *model.Tenant {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Email != "" {
		merged.Email = updates.Email
	}
	if updates.Phone != "" {
		merged.Phone = updates.Phone
	}
	if updates.Tower != "" {
		merged.Tower = updates.Tower
	}
	if updates.Unit != "" {
		merged.Unit = updates.Unit
	}
	if updates.BookingLimit != nil {
		merged.BookingLimit = *updates.BookingLimit
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	if updates.ProfilePicture != nil {
		merged.ProfilePicture = *updates.ProfilePicture
	}

	return &merged
}
