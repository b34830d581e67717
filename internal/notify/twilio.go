package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TwilioSender delivers SMS and WhatsApp messages through the Twilio
// Messages API.
type TwilioSender struct {
	accountSID string
	authToken  string
	baseURL    string
	client     *http.Client
}

// NewTwilioSender builds the sender. Returns nil when credentials are
// missing, which leaves the sms and whatsapp channels unconfigured.
func NewTwilioSender(accountSID, authToken, baseURL string, timeout time.Duration) *TwilioSender {
	if accountSID == "" || authToken == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		baseURL:    baseURL,
		client:     &http.Client{Timeout: timeout},
	}
}

// Send posts the message to the account's Messages endpoint. The caller is
// responsible for any channel address prefixing (e.g. "whatsapp:").
func (s *TwilioSender) Send(ctx context.Context, from, to, body string) error {
	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms sending failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio error: %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
