// Package sms sends templated order-lifecycle notifications through the
// Africa's Talking SMS gateway. Gateway failures are reported as
// structured results and never abort the calling business operation.
package sms

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds the gateway credentials and endpoint.
type Config struct {
	Username string
	APIKey   string
	SenderID string
	BaseURL  string
}

// Result describes the outcome of one send attempt.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Err       string `json:"error,omitempty"`
}

// Gateway is the transport seam the notification service talks through.
type Gateway interface {
	Send(phone, message string) Result
}

// Client is an HTTP client for the Africa's Talking messaging endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a new gateway client. An empty username or API key
// yields a client that reports every send as an unconfigured failure.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type gatewayResponse struct {
	SMSMessageData struct {
		Recipients []struct {
			Status    string `json:"status"`
			MessageID string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// Send delivers one message to one recipient. The phone number is
// normalized to international format before the call.
func (c *Client) Send(phone, message string) Result {
	if c.cfg.Username == "" || c.cfg.APIKey == "" {
		return Result{Success: false, Err: "sms gateway not configured"}
	}

	form := url.Values{}
	form.Set("username", c.cfg.Username)
	form.Set("to", NormalizePhone(phone))
	form.Set("message", message)
	if c.cfg.SenderID != "" {
		form.Set("from", c.cfg.SenderID)
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{Success: false, Err: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Success: false, Err: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Success: false, Err: fmt.Sprintf("gateway returned status %d", resp.StatusCode)}
	}

	var body gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{Success: false, Err: fmt.Sprintf("failed to decode gateway response: %v", err)}
	}
	if len(body.SMSMessageData.Recipients) == 0 {
		return Result{Success: false, Err: "gateway accepted no recipients"}
	}

	recipient := body.SMSMessageData.Recipients[0]
	return Result{
		Success:   recipient.Status == "Success",
		MessageID: recipient.MessageID,
		Status:    recipient.Status,
	}
}

// NormalizePhone rewrites local Nigerian phone forms to a single
// country-coded international format. "0803..." and bare "803..." both
// become "+234803...".
func NormalizePhone(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	phone = replacer.Replace(phone)

	switch {
	case strings.HasPrefix(phone, "+"):
		return phone
	case strings.HasPrefix(phone, "0"):
		return "+234" + phone[1:]
	case strings.HasPrefix(phone, "234"):
		return "+" + phone
	default:
		return "+234" + phone
	}
}
