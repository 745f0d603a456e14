// Package tenantmap is the client for the tenant-mapping RPC service
// ("oauth_rpc" in original_source) — an external collaborator per spec
// §1 that translates between a frontend tenant and its paired backstage
// tenant, and vice versa.
package tenantmap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/arda-labs/notify-core/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(host string, port int) *Client {
	return &Client{
		baseURL:    fmt.Sprintf("http://%s:%d", host, port),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetBackstageClient resolves the backstage tenant paired with a frontend
// tenant, used by systemToBackstageUser.
func (c *Client) GetBackstageClient(ctx context.Context, frontendClientID int64) (int64, error) {
	return c.lookup(ctx, fmt.Sprintf("%s/tenants/%d/backstage", c.baseURL, frontendClientID))
}

// GetFrontendClient resolves the frontend tenant paired with a backstage
// tenant. The backstage handlers do not call it; they use the request's
// client_id as is.
func (c *Client) GetFrontendClient(ctx context.Context, backstageClientID int64) (int64, error) {
	return c.lookup(ctx, fmt.Sprintf("%s/tenants/%d/frontend", c.baseURL, backstageClientID))
}

func (c *Client) lookup(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, domain.NewInternalError("build tenant-mapping request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, domain.NewConnectionError("tenant-mapping request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, domain.NewDataNotFoundError("tenant mapping")
	}
	if resp.StatusCode != http.StatusOK {
		return 0, domain.NewStatusError(resp.StatusCode, "tenant-mapping request failed")
	}

	var out struct {
		ClientID int64 `json:"client_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, domain.NewInternalError("decode tenant mapping", err)
	}
	return out.ClientID, nil
}
