package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"courtly/pkg/client"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/logger"
	"courtly/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCourtService struct {
	courts map[string]*model.Court
}

func (s *stubCourtService) Create(ctx context.Context, court *model.Court) error {
	court.ID = "64b7f0c2a1b2c3d4e5f60718"
	court.IsActive = true
	s.courts[court.ID] = court
	return nil
}

func (s *stubCourtService) GetByID(ctx context.Context, id string) (*model.Court, error) {
	if c, ok := s.courts[id]; ok {
		return c, nil
	}
	return nil, apperrors.NotFoundWithID("Court", id)
}

func (s *stubCourtService) GetAll(ctx context.Context, active *bool, limit int, offset int64) ([]*model.Court, int64, error) {
	out := []*model.Court{}
	for _, c := range s.courts {
		if active == nil || c.IsActive == *active {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubCourtService) Update(ctx context.Context, id string, updates *model.CourtUpdate) (*model.Court, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updates.IsActive != nil {
		c.IsActive = *updates.IsActive
	}
	return c, nil
}

func (s *stubCourtService) Delete(ctx context.Context, id string) error {
	if _, ok := s.courts[id]; !ok {
		return apperrors.NotFoundWithID("Court", id)
	}
	delete(s.courts, id)
	return nil
}

func TestCourtRoutes_RoundTrip(t *testing.T) {
	router := httprouter.New()
	NewCourtHandler(&stubCourtService{courts: map[string]*model.Court{}}, logger.Discard()).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx := context.Background()
	courts := client.NewCourtClient(srv.URL, "admin")

	resp, err := courts.Create(ctx, map[string]any{
		"name":            "Court 1",
		"hourly_rate":     "12.50",
		"light_surcharge": "3",
		"operating_hours": map[string]string{"opens_at": "07:00", "closes_at": "22:00"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.String())

	created, err := courts.DecodeCourt(resp)
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, "12.5", created.HourlyRate.String())
	assert.Equal(t, "22:00", created.OperatingHours.ClosesAt)

	resp, err = courts.Update(ctx, created.ID, map[string]any{"is_active": false})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.String())

	resp, err = courts.GetAll(ctx, 10, 0)
	require.NoError(t, err)
	list, meta, err := courts.DecodeCourts(resp)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(1), meta.TotalCount)
	assert.False(t, list[0].IsActive)

	resp, err = courts.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = courts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Court not found", client.GetErrorMessage(resp))
}

func TestCourtCreate_RejectsMalformedMoney(t *testing.T) {
	router := httprouter.New()
	NewCourtHandler(&stubCourtService{courts: map[string]*model.Court{}}, logger.Discard()).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := client.NewCourtClient(srv.URL, "admin").Create(context.Background(), map[string]any{
		"name":        "Court 2",
		"hourly_rate": "twelve",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
