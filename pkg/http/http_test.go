package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courtly/pkg/config"
	apperrors "courtly/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"conflict", apperrors.Conflict("slot taken"), http.StatusConflict, apperrors.CodeConflict, "slot taken"},
		{"invalid input", apperrors.InvalidInput("bad status"), http.StatusBadRequest, apperrors.CodeInvalidInput, "bad status"},
		{"plain error", errors.New("mongo: connection refused"), http.StatusInternalServerError, apperrors.CodeInternal, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.wantCode || resp.Error != tt.wantMsg {
				t.Errorf("got %+v", resp)
			}
		})
	}
}

func TestExtractLimitOffset(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int64
		wantErr    bool
	}{
		{"", config.DefaultPageSize, 0, false},
		{"limit=5&offset=10", 5, 10, false},
		{"limit=100000", config.MaxPaginationLimit, 0, false},
		{"offset=-3", config.DefaultPageSize, 0, false},
		{"limit=abc", 0, 0, true},
		{"offset=x", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?"+tt.query, nil)
			limit, offset, err := ExtractLimitOffset(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got (%d, %d), want (%d, %d)", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestParseOptionalBool(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/courts?active=true", nil)
	v, err := ParseOptionalBool(r, "active")
	if err != nil || v == nil || !*v {
		t.Fatalf("got %v, %v", v, err)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/courts", nil)
	v, err = ParseOptionalBool(r, "active")
	if err != nil || v != nil {
		t.Fatalf("expected nil, got %v, %v", v, err)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/courts?active=maybe", nil)
	if _, err := ParseOptionalBool(r, "active"); err == nil {
		t.Fatal("expected error")
	}
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Court A"}`))
	if err := DecodeJSON(r, &body); err != nil || body.Name != "Court A" {
		t.Fatalf("got %+v, %v", body, err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	if err := DecodeJSON(r, &body); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	if err := DecodeJSON(r, &body); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
