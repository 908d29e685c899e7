package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider delivers OTP codes out-of-band. Implementations must treat
// delivery as a bounded-timeout call: a hang is a delivery failure, not a
// success.
type Provider interface {
	SendOTP(ctx context.Context, mobile, code string) error

	// TestMode reports whether this provider is the no-delivery fallback.
	// Real providers always return false; the fallback always returns true.
	// Which one a process gets is decided once at startup from the presence
	// of the delivery credential.
	TestMode() bool
}

// Delivery calls that outlive this window are treated as failed
const deliveryTimeout = 5 * time.Second

// Fast2SMSProvider sends OTP SMS via Fast2SMS (India)
type Fast2SMSProvider struct {
	apiKey     string
	route      string // "q" (quick), "dlt" (registered sender, cheaper)
	senderID   string
	templateID string
	baseURL    string
	client     *http.Client
}

// NewFast2SMSProvider creates the production SMS provider. The API key must
// be non-empty; callers without a credential get the test provider instead.
func NewFast2SMSProvider(apiKey, route, senderID, templateID string) (*Fast2SMSProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("fast2sms: api key is required")
	}
	if route == "" {
		route = "q"
	}
	return &Fast2SMSProvider{
		apiKey:     apiKey,
		route:      route,
		senderID:   senderID,
		templateID: templateID,
		baseURL:    "https://www.fast2sms.com/dev/bulkV2",
		client:     &http.Client{Timeout: deliveryTimeout},
	}, nil
}

func (p *Fast2SMSProvider) TestMode() bool { return false }

// SendOTP sends the verification code via Fast2SMS
func (p *Fast2SMSProvider) SendOTP(ctx context.Context, mobile, code string) error {
	message := fmt.Sprintf("Your StockGyan OTP is %s. Valid for 5 minutes. Do not share this code with anyone.", code)

	var apiURL string
	switch p.route {
	case "dlt":
		// DLT route (cheaper, requires sender registration)
		apiURL = fmt.Sprintf(
			"%s?authorization=%s&route=dlt&sender_id=%s&message=%s&variables_values=%s&flash=0&numbers=%s",
			p.baseURL,
			url.QueryEscape(p.apiKey),
			url.QueryEscape(p.senderID),
			url.QueryEscape(p.templateID),
			url.QueryEscape(code),
			url.QueryEscape(mobile),
		)
	default:
		// Quick route (expensive but works immediately)
		apiURL = fmt.Sprintf(
			"%s?authorization=%s&route=q&message=%s&language=english&flash=0&numbers=%s",
			p.baseURL,
			url.QueryEscape(p.apiKey),
			url.QueryEscape(message),
			url.QueryEscape(mobile),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS API error (status %d): %s", resp.StatusCode, string(body))
	}

	// Fast2SMS reports API-level failures in the body with a 200 status
	if strings.Contains(string(body), `"return":false`) {
		return fmt.Errorf("SMS API error: %s", string(body))
	}

	return nil
}
