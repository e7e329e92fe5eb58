package client

import (
	"context"
	"fmt"
	"net/url"

	"courtly/pkg/model"
)

type CourtClient struct {
	httpClient *HttpClient
}

func NewCourtClient(baseURL, userType string) *CourtClient {
	return &CourtClient{httpClient: NewHttpClient(baseURL, userType)}
}

func (c *CourtClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/courts", body)
}

func (c *CourtClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	return c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/courts?limit=%d&offset=%d", limit, offset))
}

func (c *CourtClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/courts/id/"+url.PathEscape(id))
}

func (c *CourtClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	return c.httpClient.PATCH(ctx, "/api/v1/courts/id/"+url.PathEscape(id), body)
}

func (c *CourtClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/courts/id/"+url.PathEscape(id))
}

func (c *CourtClient) DecodeCourt(resp *Response) (*model.Court, error) {
	return decodeData[model.Court](resp)
}

func (c *CourtClient) DecodeCourts(resp *Response) ([]*model.Court, *Metadata, error) {
	return decodePage[*model.Court](resp)
}
