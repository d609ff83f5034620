package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SMSSender delivers a single message to an E.164 destination.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// SMSGateway posts messages to a provider's JSON send endpoint. The provider
// is expected to accept {"to": ..., "body": ...} with a bearer API key, which
// matches the local SMS aggregators the clinic uses.
type SMSGateway struct {
	URL    string
	APIKey string
	Client *http.Client
}

func NewSMSGateway(url, apiKey string) *SMSGateway {
	return &SMSGateway{
		URL:    url,
		APIKey: apiKey,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *SMSGateway) Send(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(map[string]string{"to": to, "body": body})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	res, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned %s", res.Status)
	}
	return nil
}

var _ SMSSender = (*SMSGateway)(nil)
