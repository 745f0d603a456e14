// Package sms sends outbound SMS through the Chuanx gateway, per spec
// §4.3/§6.
package sms

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/arda-labs/notify-core/internal/domain"
	"github.com/arda-labs/notify-core/internal/phone"
)

const endpoint = "http://api.chuanx.cn/sms/batch/v2"

// Sender posts SMS through the Chuanx HTTP API.
type Sender struct {
	appKey     string
	appSecret  string
	appCode    string
	httpClient *http.Client
}

func New(appKey, appSecret, appCode string) *Sender {
	return &Sender{
		appKey: appKey, appSecret: appSecret, appCode: appCode,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send normalizes address to the JP phone format and GETs the SMS
// endpoint. An address that fails normalization surfaces
// InvalidPhoneNumberError without any HTTP call.
func (s *Sender) Send(ctx context.Context, address, content string) error {
	normalized, err := phone.NormalizeJP(address)
	if err != nil {
		return err
	}

	q := url.Values{
		"appkey":    {s.appKey},
		"appsecret": {s.appSecret},
		"appcode":   {s.appCode},
		"phone":     {normalized},
		"msg":       {content},
		"extend":    {""},
	}
	fullURL := endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.NewInternalError("build sms request", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.NewConnectionError("sms request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return domain.NewStatusError(resp.StatusCode, string(body))
	}
	return nil
}
