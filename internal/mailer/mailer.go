// Package mailer posts outbound email through Mailgun, per spec §4.3/§6.
package mailer

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arda-labs/notify-core/internal/domain"
)

const endpoint = "https://api.mailgun.net/v3/kgs.tw/messages"

// Mailer posts email through the Mailgun HTTP API.
type Mailer struct {
	apiKey     string
	httpClient *http.Client
}

func New(apiKey string) *Mailer {
	return &Mailer{apiKey: apiKey, httpClient: &http.Client{Timeout: 15 * time.Second}}
}

// Send posts one message. 2xx is success; non-2xx returns StatusError with
// the response body; a transport failure returns ConnectionError.
func (m *Mailer) Send(ctx context.Context, to, title, content string) error {
	form := url.Values{
		"from":    {"mailgun@kgs.tw"},
		"to":      {to},
		"subject": {title},
		"html":    {content},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.NewInternalError("build mailgun request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return domain.NewConnectionError("mailgun request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return domain.NewStatusError(resp.StatusCode, string(body))
	}
	return nil
}
