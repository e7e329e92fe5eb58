package client

import (
	"context"
	"fmt"
	"net/url"

	"courtly/pkg/model"
)

type TenantClient struct {
	httpClient *HttpClient
}

func NewTenantClient(baseURL, userType string) *TenantClient {
	return &TenantClient{httpClient: NewHttpClient(baseURL, userType)}
}

func (c *TenantClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/tenants", body)
}

func (c *TenantClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	return c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/tenants?limit=%d&offset=%d", limit, offset))
}

func (c *TenantClient) Search(ctx context.Context, tower, unit string) (*Response, error) {
	q := url.Values{}
	if tower != "" {
		q.Set("tower", tower)
	}
	if unit != "" {
		q.Set("unit", unit)
	}
	return c.httpClient.GET(ctx, "/api/v1/tenants/search?"+q.Encode())
}

func (c *TenantClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/tenants/id/"+url.PathEscape(id))
}

func (c *TenantClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	return c.httpClient.PATCH(ctx, "/api/v1/tenants/id/"+url.PathEscape(id), body)
}

func (c *TenantClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/tenants/id/"+url.PathEscape(id))
}

func (c *TenantClient) DecodeTenant(resp *Response) (*model.Tenant, error) {
	return decodeData[model.Tenant](resp)
}

func (c *TenantClient) DecodeTenants(resp *Response) ([]*model.Tenant, *Metadata, error) {
	return decodePage[*model.Tenant](resp)
}
