package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	courtserrors "courtly/internal/courts/errors"
	"courtly/internal/courts/validator"
	"courtly/pkg/config"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/logger"
	"courtly/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const courtOID = "64b7f0c2a1b2c3d4e5f60718"

type mockCourtRepository struct {
	mock.Mock
}

func (m *mockCourtRepository) Create(ctx context.Context, court *model.Court) error {
	args := m.Called(ctx, court)
	if args.Error(0) == nil {
		court.ID = courtOID
	}
	return args.Error(0)
}

func (m *mockCourtRepository) FindByID(ctx context.Context, id string) (*model.Court, error) {
	args := m.Called(ctx, id)
	court, _ := args.Get(0).(*model.Court)
	return court, args.Error(1)
}

func (m *mockCourtRepository) FindAll(ctx context.Context, active *bool, limit int, offset int64) ([]*model.Court, error) {
	args := m.Called(ctx, active, limit, offset)
	courts, _ := args.Get(0).([]*model.Court)
	return courts, args.Error(1)
}

func (m *mockCourtRepository) Count(ctx context.Context, active *bool) (int64, error) {
	args := m.Called(ctx, active)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCourtRepository) Update(ctx context.Context, id string, court *model.Court) error {
	return m.Called(ctx, id, court).Error(0)
}

func (m *mockCourtRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookingCounter struct {
	mock.Mock
}

func (m *mockBookingCounter) CountByCourt(ctx context.Context, courtID string) (int64, error) {
	args := m.Called(ctx, courtID)
	return args.Get(0).(int64), args.Error(1)
}

func newService(repo *mockCourtRepository, counter BookingCounter) CourtService {
	cfg := &config.Config{Log: logger.Discard()}
	return NewCourtService(repo, counter, validator.NewCourtValidator(cfg.Log), cfg)
}

func validCourt() *model.Court {
	return &model.Court{
		Name:           "Court  1",
		Description:    " Indoor, sprung floor ",
		HourlyRate:     model.MustMoney("12.505"),
		LightSurcharge: model.MustMoney("3"),
		OperatingHours: model.OperatingHours{OpensAt: "07:00", ClosesAt: "22:00"},
	}
}

func appStatus(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.HTTPStatus
}

func TestCreate_ForcesActiveAndNormalizes(t *testing.T) {
	repo := &mockCourtRepository{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Court")).Return(nil)

	court := validCourt()
	court.IsActive = false
	court.ID = "ignored"

	require.NoError(t, newService(repo, nil).Create(context.Background(), court))

	assert.Equal(t, courtOID, court.ID)
	assert.True(t, court.IsActive)
	assert.Equal(t, "Court 1", court.Name)
	assert.Equal(t, "Indoor, sprung floor", court.Description)
	assert.Equal(t, "12.51", court.HourlyRate.StringFixed(2))
	repo.AssertExpectations(t)
}

func TestCreate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *model.Court)
	}{
		{"closes before opens", func(c *model.Court) { c.OperatingHours.ClosesAt = "06:00" }},
		{"equal hours", func(c *model.Court) { c.OperatingHours.ClosesAt = c.OperatingHours.OpensAt }},
		{"bad clock", func(c *model.Court) { c.OperatingHours.OpensAt = "7am" }},
		{"negative rate", func(c *model.Court) { c.HourlyRate = model.MustMoney("-1") }},
		{"negative surcharge", func(c *model.Court) { c.LightSurcharge = model.MustMoney("-0.01") }},
		{"short name", func(c *model.Court) { c.Name = "A" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCourtRepository{}
			court := validCourt()
			tt.mutate(court)

			err := newService(repo, nil).Create(context.Background(), court)
			assert.Equal(t, http.StatusUnprocessableEntity, appStatus(t, err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := &mockCourtRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(courtserrors.ErrDuplicateName)

	err := newService(repo, nil).Create(context.Background(), validCourt())
	assert.Equal(t, http.StatusConflict, appStatus(t, err))
}

func TestUpdate_OperatingHours(t *testing.T) {
	existing := validCourt()
	existing.ID = courtOID
	existing.IsActive = true

	t.Run("valid window", func(t *testing.T) {
		repo := &mockCourtRepository{}
		repo.On("FindByID", mock.Anything, courtOID).Return(existing, nil)
		repo.On("Update", mock.Anything, courtOID, mock.Anything).Return(nil)

		hours := model.OperatingHours{OpensAt: "06:30", ClosesAt: "23:00"}
		rate := model.MustMoney("15")
		updated, err := newService(repo, nil).Update(context.Background(), courtOID, &model.CourtUpdate{
			OperatingHours: &hours,
			HourlyRate:     &rate,
		})
		require.NoError(t, err)
		assert.Equal(t, hours, updated.OperatingHours)
		assert.Equal(t, "15.00", updated.HourlyRate.StringFixed(2))
		assert.Equal(t, "Court 1", updated.Name)
	})

	t.Run("inverted window", func(t *testing.T) {
		repo := &mockCourtRepository{}
		repo.On("FindByID", mock.Anything, courtOID).Return(existing, nil)

		hours := model.OperatingHours{OpensAt: "20:00", ClosesAt: "08:00"}
		_, err := newService(repo, nil).Update(context.Background(), courtOID, &model.CourtUpdate{OperatingHours: &hours})
		assert.Equal(t, http.StatusUnprocessableEntity, appStatus(t, err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing court", func(t *testing.T) {
		repo := &mockCourtRepository{}
		repo.On("FindByID", mock.Anything, courtOID).Return(nil, courtserrors.ErrNotFound)

		_, err := newService(repo, nil).Update(context.Background(), courtOID, &model.CourtUpdate{Name: "Court 9"})
		assert.Equal(t, http.StatusNotFound, appStatus(t, err))
	})
}

func TestDelete_ChecksBookings(t *testing.T) {
	repo := &mockCourtRepository{}
	counter := &mockBookingCounter{}
	counter.On("CountByCourt", mock.Anything, courtOID).Return(int64(3), nil).Once()

	err := newService(repo, counter).Delete(context.Background(), courtOID)
	assert.Equal(t, http.StatusConflict, appStatus(t, err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	counter.On("CountByCourt", mock.Anything, courtOID).Return(int64(0), nil).Once()
	repo.On("Delete", mock.Anything, courtOID).Return(nil)
	require.NoError(t, newService(repo, counter).Delete(context.Background(), courtOID))
	repo.AssertExpectations(t)
	counter.AssertExpectations(t)
}

func TestGetAll_PassesActiveFilter(t *testing.T) {
	active := true
	repo := &mockCourtRepository{}
	repo.On("Count", mock.Anything, &active).Return(int64(1), nil)
	repo.On("FindAll", mock.Anything, &active, config.DefaultPageSize, int64(0)).
		Return([]*model.Court{validCourt()}, nil)

	courts, total, err := newService(repo, nil).GetAll(context.Background(), &active, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, courts, 1)
	repo.AssertExpectations(t)
}
