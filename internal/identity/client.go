// Package identity is the client for the identity/profile RPC service —
// an external collaborator per spec §1. It adapts the teacher's Keycloak
// resolver (internal/infrastructure/keycloak/resolver.go): a plain REST
// client with a small in-memory TTL cache guarding profile fetches, here
// repurposed from realm/user-role lookups to per-user profile/contact
// lookups.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/arda-labs/notify-core/internal/domain"
)

// Client calls the identity service's REST surface.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.RWMutex
	cacheTTL  time.Duration
	cacheData map[string]cacheEntry
}

type cacheEntry struct {
	data      any
	expiresAt time.Time
}

func New(host string, port int) *Client {
	return &Client{
		baseURL:    fmt.Sprintf("http://%s:%d", host, port),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cacheTTL:   30 * time.Second,
		cacheData:  make(map[string]cacheEntry),
	}
}

// GetUserProfile fetches the profile fields the template engine needs for
// one user under one tenant.
func (c *Client) GetUserProfile(ctx context.Context, clientID, userID int64) (domain.UserProfile, error) {
	cacheKey := fmt.Sprintf("profile:%d:%d", clientID, userID)
	if cached, ok := c.fromCache(cacheKey); ok {
		return cached.(domain.UserProfile), nil
	}

	url := fmt.Sprintf("%s/clients/%d/users/%d/profile", c.baseURL, clientID, userID)
	var profile domain.UserProfile
	if err := c.getJSON(ctx, url, &profile); err != nil {
		return domain.UserProfile{}, err
	}
	profile.UserID = userID
	c.toCache(cacheKey, profile)
	return profile, nil
}

// GetEmailAndPhoneByUserIDs batch-fetches optional email/phone contact
// info for every userID under clientID, used by the batch-notify worker.
func (c *Client) GetEmailAndPhoneByUserIDs(ctx context.Context, clientID int64, userIDs []int64) ([]domain.UserContact, error) {
	url := fmt.Sprintf("%s/clients/%d/users/contacts", c.baseURL, clientID)

	body, err := json.Marshal(struct {
		UserIDs []int64 `json:"user_ids"`
	}{UserIDs: userIDs})
	if err != nil {
		return nil, domain.NewInternalError("marshal contact batch request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewInternalError("build contact batch request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewConnectionError("identity contacts batch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewStatusError(resp.StatusCode, "identity contacts batch failed")
	}

	var contacts []domain.UserContact
	if err := json.NewDecoder(resp.Body).Decode(&contacts); err != nil {
		return nil, domain.NewInternalError("decode contacts batch", err)
	}
	return contacts, nil
}

// GetAccountByUserID resolves the display account name for an admin, used
// when a backstage stream is created.
func (c *Client) GetAccountByUserID(ctx context.Context, clientID, userID int64) (string, error) {
	cacheKey := "account:" + strconv.FormatInt(clientID, 10) + ":" + strconv.FormatInt(userID, 10)
	if cached, ok := c.fromCache(cacheKey); ok {
		return cached.(string), nil
	}

	url := fmt.Sprintf("%s/clients/%d/users/%d/account", c.baseURL, clientID, userID)
	var out struct {
		Account string `json:"account"`
	}
	if err := c.getJSON(ctx, url, &out); err != nil {
		return "", err
	}
	c.toCache(cacheKey, out.Account)
	return out.Account, nil
}

// Recipient-resolution surface for backstageSendToUser's exclusive-choice
// recipient selection.

func (c *Client) GetAccountsByClientID(ctx context.Context, clientID int64) ([]int64, []string, error) {
	return c.getAccountList(ctx, fmt.Sprintf("%s/clients/%d/users", c.baseURL, clientID))
}

func (c *Client) GetAccountsByUserIDs(ctx context.Context, clientID int64, userIDs []int64) ([]int64, []string, error) {
	body, _ := json.Marshal(userIDs)
	url := fmt.Sprintf("%s/clients/%d/users/by-ids", c.baseURL, clientID)
	return c.postAccountList(ctx, url, body)
}

func (c *Client) GetAccountsByVipLevel(ctx context.Context, clientID int64, vipLevels []int) ([]int64, []string, error) {
	body, _ := json.Marshal(vipLevels)
	url := fmt.Sprintf("%s/clients/%d/users/by-vip-level", c.baseURL, clientID)
	return c.postAccountList(ctx, url, body)
}

type accountList struct {
	UserIDs  []int64  `json:"user_ids"`
	Accounts []string `json:"accounts"`
}

func (c *Client) getAccountList(ctx context.Context, url string) ([]int64, []string, error) {
	var out accountList
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, nil, err
	}
	return out.UserIDs, out.Accounts, nil
}

func (c *Client) postAccountList(ctx context.Context, url string, body []byte) ([]int64, []string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, nil, domain.NewInternalError("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, domain.NewConnectionError("identity request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, domain.NewStatusError(resp.StatusCode, "identity request failed")
	}

	var out accountList
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, nil, domain.NewInternalError("decode account list", err)
	}
	return out.UserIDs, out.Accounts, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.NewInternalError("build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewConnectionError("identity request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.NewDataNotFoundError(url)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.NewStatusError(resp.StatusCode, "identity request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return domain.NewInternalError("decode identity response", err)
	}
	return nil
}

func (c *Client) fromCache(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cacheData[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.data, true
}

func (c *Client) toCache(key string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cacheData[key] = cacheEntry{data: data, expiresAt: time.Now().Add(c.cacheTTL)}
}
