package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	tenantserrors "courtly/internal/tenants/errors"
	"courtly/internal/tenants/validator"
	"courtly/pkg/config"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/logger"
	"courtly/pkg/model"
)

const tenantOID = "507f1f77bcf86cd799439011"

type mockTenantRepository struct {
	createFunc   func(ctx context.Context, tenant *model.Tenant) error
	findByIDFunc func(ctx context.Context, id string) (*model.Tenant, error)
	findAllFunc  func(ctx context.Context, filter model.TenantFilter, limit int, offset int64) ([]*model.Tenant, error)
	countFunc    func(ctx context.Context, filter model.TenantFilter) (int64, error)
	updateFunc   func(ctx context.Context, id string, tenant *model.Tenant) error
	deleteFunc   func(ctx context.Context, id string) error
}

func (m *mockTenantRepository) Create(ctx context.Context, tenant *model.Tenant) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, tenant)
	}
	tenant.ID = tenantOID
	return nil
}

func (m *mockTenantRepository) FindByID(ctx context.Context, id string) (*model.Tenant, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, tenantserrors.ErrNotFound
}

func (m *mockTenantRepository) FindAll(ctx context.Context, filter model.TenantFilter, limit int, offset int64) ([]*model.Tenant, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter, limit, offset)
	}
	return []*model.Tenant{}, nil
}

func (m *mockTenantRepository) Count(ctx context.Context, filter model.TenantFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockTenantRepository) Update(ctx context.Context, id string, tenant *model.Tenant) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, tenant)
	}
	return nil
}

func (m *mockTenantRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type countFunc func(ctx context.Context, tenantID string) (int64, error)

func (f countFunc) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	return f(ctx, tenantID)
}

func testConfig() *config.Config {
	return &config.Config{
		Log:                 logger.Discard(),
		DefaultPhoneRegion:  "SG",
		DefaultBookingLimit: 4,
	}
}

func newTestService(repo *mockTenantRepository, bookings BookingCounter) TenantService {
	cfg := testConfig()
	return NewTenantService(repo, bookings, validator.NewTenantValidator(cfg.Log), cfg)
}

func existingTenant() *model.Tenant {
	return &model.Tenant{
		ID:           tenantOID,
		TenantID:     "T-100",
		Name:         "Alice Tan",
		Email:        "alice@example.com",
		Phone:        "+6591234567",
		Tower:        "B",
		Unit:         "12-03",
		BookingLimit: 4,
		IsActive:     true,
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr.HTTPStatus
}

func TestCreate_SanitizesAndDefaults(t *testing.T) {
	var stored *model.Tenant
	repo := &mockTenantRepository{
		createFunc: func(ctx context.Context, tenant *model.Tenant) error {
			stored = tenant
			tenant.ID = tenantOID
			return nil
		},
	}
	svc := newTestService(repo, nil)

	tenant, err := svc.Create(context.Background(), &model.TenantCreate{
		TenantID:       "  T-100 ",
		Name:           "  Alice    Tan ",
		Email:          "Alice@Example.COM",
		Phone:          "9123 4567",
		Tower:          " b ",
		Unit:           "12 - 03",
		ProfilePicture: "http://www.Example.com/p/alice.png?utm_source=x",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != tenant {
		t.Fatal("service must return the stored tenant")
	}

	want := map[string]string{
		"tenant_id":       "T-100",
		"name":            "Alice Tan",
		"email":           "alice@example.com",
		"phone":           "+6591234567",
		"tower":           "B",
		"unit":            "12-03",
		"profile_picture": "https://example.com/p/alice.png",
	}
	got := map[string]string{
		"tenant_id":       tenant.TenantID,
		"name":            tenant.Name,
		"email":           tenant.Email,
		"phone":           tenant.Phone,
		"tower":           tenant.Tower,
		"unit":            tenant.Unit,
		"profile_picture": tenant.ProfilePicture,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
	if tenant.BookingLimit != 4 {
		t.Errorf("booking_limit = %d, want default 4", tenant.BookingLimit)
	}
	if !tenant.IsActive {
		t.Error("new tenants must start active")
	}
}

func TestCreate_ExplicitZeroBookingLimit(t *testing.T) {
	svc := newTestService(&mockTenantRepository{}, nil)
	zero := 0

	tenant, err := svc.Create(context.Background(), &model.TenantCreate{
		TenantID: "T-1", Name: "Bo", Email: "bo@example.com", Phone: "+6591234567", BookingLimit: &zero,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tenant.BookingLimit != 0 {
		t.Errorf("booking_limit = %d, want 0", tenant.BookingLimit)
	}
}

func TestCreate_Errors(t *testing.T) {
	negative := -1
	valid := model.TenantCreate{TenantID: "T-1", Name: "Bo", Email: "bo@example.com", Phone: "+6591234567"}

	tests := []struct {
		name      string
		mutate    func(c *model.TenantCreate)
		repoErr   error
		wantCode  int
		wantField string
	}{
		{"bad email", func(c *model.TenantCreate) { c.Email = "not-an-email" }, nil, http.StatusUnprocessableEntity, "email"},
		{"bad phone", func(c *model.TenantCreate) { c.Phone = "12" }, nil, http.StatusUnprocessableEntity, "phone"},
		{"negative limit", func(c *model.TenantCreate) { c.BookingLimit = &negative }, nil, http.StatusUnprocessableEntity, "booking_limit"},
		{"missing tenant_id", func(c *model.TenantCreate) { c.TenantID = "   " }, nil, http.StatusUnprocessableEntity, "tenant_id"},
		{"duplicate", func(c *model.TenantCreate) {}, tenantserrors.ErrDuplicateTenantID, http.StatusConflict, ""},
		{"storage failure", func(c *model.TenantCreate) {}, errors.New("socket closed"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTenantRepository{
				createFunc: func(ctx context.Context, tenant *model.Tenant) error { return tt.repoErr },
			}
			svc := newTestService(repo, nil)

			req := valid
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), &req)
			if code := statusOf(t, err); code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%v)", code, tt.wantCode, err)
			}
			if tt.wantField != "" && !containsField(err, tt.wantField) {
				t.Errorf("expected a validation error on %q, got %v", tt.wantField, err)
			}
		})
	}
}

func containsField(err error, field string) bool {
	appErr := apperrors.AsAppError(err)
	errs, ok := appErr.Details["errors"].(interface{ Error() string })
	if !ok {
		return false
	}
	return strings.Contains(errs.Error(), field+":")
}

func TestUpdate_MergesPartialFields(t *testing.T) {
	var saved *model.Tenant
	repo := &mockTenantRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Tenant, error) { return existingTenant(), nil },
		updateFunc: func(ctx context.Context, id string, tenant *model.Tenant) error {
			saved = tenant
			return nil
		},
	}
	svc := newTestService(repo, nil)

	zero := 0
	inactive := false
	updated, err := svc.Update(context.Background(), tenantOID, &model.TenantUpdate{
		Phone:        "9876 5432",
		BookingLimit: &zero,
		IsActive:     &inactive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != updated {
		t.Fatal("returned tenant must be the saved one")
	}
	if updated.Phone != "+6598765432" {
		t.Errorf("phone = %q", updated.Phone)
	}
	if updated.BookingLimit != 0 || updated.IsActive {
		t.Errorf("pointer fields not applied: %+v", updated)
	}
	if updated.Name != "Alice Tan" || updated.Email != "alice@example.com" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdate_NotFoundAndInvalidID(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", tenantserrors.ErrNotFound, http.StatusNotFound},
		{"invalid id", tenantserrors.ErrInvalidID, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTenantRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Tenant, error) { return nil, tt.err },
			}
			_, err := newTestService(repo, nil).Update(context.Background(), "abc", &model.TenantUpdate{Name: "New Name"})
			if code := statusOf(t, err); code != tt.want {
				t.Errorf("status = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestDelete_RefusesTenantWithBookings(t *testing.T) {
	var deleted atomic.Bool
	repo := &mockTenantRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			deleted.Store(true)
			return nil
		},
	}

	withBookings := countFunc(func(ctx context.Context, tenantID string) (int64, error) { return 2, nil })
	err := newTestService(repo, withBookings).Delete(context.Background(), tenantOID)
	if code := statusOf(t, err); code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", code)
	}
	if deleted.Load() {
		t.Fatal("tenant with bookings must not be deleted")
	}

	noBookings := countFunc(func(ctx context.Context, tenantID string) (int64, error) { return 0, nil })
	if err := newTestService(repo, noBookings).Delete(context.Background(), tenantOID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted.Load() {
		t.Fatal("tenant without bookings should be deleted")
	}
}

func TestGetAll_NormalizesPagingAndFilter(t *testing.T) {
	var gotLimit int
	var gotFilter model.TenantFilter
	repo := &mockTenantRepository{
		findAllFunc: func(ctx context.Context, filter model.TenantFilter, limit int, offset int64) ([]*model.Tenant, error) {
			gotLimit = limit
			gotFilter = filter
			return []*model.Tenant{existingTenant()}, nil
		},
		countFunc: func(ctx context.Context, filter model.TenantFilter) (int64, error) { return 1, nil },
	}

	tenants, total, err := newTestService(repo, nil).GetAll(context.Background(), model.TenantFilter{Tower: " b "}, 5000, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != config.MaxPaginationLimit {
		t.Errorf("limit = %d, want %d", gotLimit, config.MaxPaginationLimit)
	}
	if gotFilter.Tower != "B" {
		t.Errorf("tower filter = %q, want B", gotFilter.Tower)
	}
	if total != 1 || len(tenants) != 1 {
		t.Errorf("got %d tenants, total %d", len(tenants), total)
	}
}

func TestGetAll_CountFailure(t *testing.T) {
	repo := &mockTenantRepository{
		countFunc: func(ctx context.Context, filter model.TenantFilter) (int64, error) {
			return 0, errors.New("boom")
		},
	}
	_, _, err := newTestService(repo, nil).GetAll(context.Background(), model.TenantFilter{}, 10, 0)
	if code := statusOf(t, err); code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", code)
	}
}
