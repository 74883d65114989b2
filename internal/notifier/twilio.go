package notifier

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TwilioSender sends SMS messages via the Twilio Messages API.
type TwilioSender struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
	Client     *http.Client
	BaseURL    string // overridable for tests
}

// NewTwilioSender creates an SMS sender with optional proxy support.
func NewTwilioSender(accountSID, authToken, from, to, proxyURL string) *TwilioSender {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TwilioSender{
		AccountSID: accountSID,
		AuthToken:  authToken,
		From:       from,
		To:         to,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://api.twilio.com",
	}
}

func (t *TwilioSender) Name() string { return "twilio" }

// Configured reports whether all four credentials are set.
func (t *TwilioSender) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.From != "" && t.To != ""
}

// Send posts one SMS to the configured destination number.
func (t *TwilioSender) Send(text string) error {
	if !t.Configured() {
		return fmt.Errorf("twilio: not configured")
	}
	apiURL := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.BaseURL, url.PathEscape(t.AccountSID))
	form := url.Values{}
	form.Set("Body", text)
	form.Set("From", t.From)
	form.Set("To", t.To)

	req, err := http.NewRequest("POST", apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.AccountSID, t.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
