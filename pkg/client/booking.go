package client

import (
	"context"
	"fmt"
	"net/url"

	"courtly/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL, userType string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL, userType),
	}
}

// BookingQuery mirrors the list filters of GET /api/v1/bookings.
type BookingQuery struct {
	Status   string
	TenantID string
	CourtID  string
	DateFrom string
	DateTo   string
	Q        string
	Limit    int
	Offset   int64
}

func (q BookingQuery) values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("status", q.Status)
	set("tenant_id", q.TenantID)
	set("court_id", q.CourtID)
	set("date_from", q.DateFrom)
	set("date_to", q.DateTo)
	set("q", q.Q)
	if q.Limit > 0 {
		v.Set("limit", fmt.Sprintf("%d", q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", fmt.Sprintf("%d", q.Offset))
	}
	return v
}

func (c *BookingClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/bookings", body)
}

func (c *BookingClient) CreateIdempotent(ctx context.Context, key string, body any) (*Response, error) {
	return c.httpClient.POSTWithHeaders(ctx, "/api/v1/bookings", body, map[string]string{HeaderIdempotencyKey: key})
}

func (c *BookingClient) List(ctx context.Context, q BookingQuery) (*Response, error) {
	path := "/api/v1/bookings"
	if encoded := q.values().Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.httpClient.GET(ctx, path)
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/bookings/id/"+url.PathEscape(id))
}

func (c *BookingClient) GetByReference(ctx context.Context, reference string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/bookings/reference/"+url.PathEscape(reference))
}

func (c *BookingClient) Reschedule(ctx context.Context, id string, body any) (*Response, error) {
	return c.httpClient.PATCH(ctx, "/api/v1/bookings/id/"+url.PathEscape(id), body)
}

func (c *BookingClient) Confirm(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/bookings/id/"+url.PathEscape(id)+"/confirm", nil)
}

func (c *BookingClient) Cancel(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/bookings/id/"+url.PathEscape(id)+"/cancel", nil)
}

func (c *BookingClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/bookings/id/"+url.PathEscape(id))
}

func (c *BookingClient) BulkDelete(ctx context.Context, ids []string) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/bookings/bulk-delete", map[string][]string{"ids": ids})
}

func (c *BookingClient) Calendar(ctx context.Context, from, to, courtID string) (*Response, error) {
	v := url.Values{}
	v.Set("from", from)
	v.Set("to", to)
	if courtID != "" {
		v.Set("court_id", courtID)
	}
	return c.httpClient.GET(ctx, "/api/v1/bookings/calendar?"+v.Encode())
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	return decodeData[model.Booking](resp)
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]*model.Booking, *Metadata, error) {
	return decodePage[*model.Booking](resp)
}

func (c *BookingClient) DecodeCalendar(resp *Response) ([]model.CalendarEntry, error) {
	entries, err := decodeData[[]model.CalendarEntry](resp)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (c *BookingClient) DecodeDeletedCount(resp *Response) (int64, error) {
	out, err := decodeData[struct {
		Deleted int64 `json:"deleted"`
	}](resp)
	if err != nil {
		return 0, err
	}
	return out.Deleted, nil
}
