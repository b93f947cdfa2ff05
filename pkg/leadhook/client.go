// Package leadhook forwards lead submissions to an external webhook as JSON.
// Requests are optionally signed with HMAC-SHA256 so the receiver can verify
// where they came from.
package leadhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries "t=<unix>,v1=<hex hmac>" when a secret is configured.
const SignatureHeader = "X-Estimator-Signature"

// MaxSignatureAge is how old a signed request may be before Verify rejects it.
const MaxSignatureAge = 5 * time.Minute

// Event is the webhook body.
type Event struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Data      any       `json:"data"`
}

// Sink receives lead events.
type Sink interface {
	Send(ctx context.Context, ev Event) error
}

// ErrNotConfigured is returned when the client has no URL.
var ErrNotConfigured = errors.New("leadhook: not configured")

// Client posts events to a webhook URL.
type Client struct {
	URL        string
	Secret     string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a Client. secret may be empty, in which case requests are unsigned.
func NewClient(url, secret string) *Client {
	return &Client{
		URL:        url,
		Secret:     secret,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// New returns a Client for url, or a NopSink when url is empty.
func New(url, secret string) Sink {
	if strings.TrimSpace(url) == "" {
		return NopSink{}
	}
	return NewClient(url, secret)
}

// Send posts ev. Any non-2xx response is an error.
func (c *Client) Send(ctx context.Context, ev Event) error {
	if c.URL == "" {
		return ErrNotConfigured
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("leadhook: encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Secret != "" {
		req.Header.Set(SignatureHeader, Sign(c.Secret, c.now(), body))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("leadhook: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("leadhook: webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}

// Sign builds the signature header value for payload at time ts.
func Sign(secret string, ts time.Time, payload []byte) string {
	t := strconv.FormatInt(ts.Unix(), 10)
	return fmt.Sprintf("t=%s,v1=%s", t, mac(secret, t, payload))
}

// Verify checks a signature header produced by Sign.
func Verify(secret string, payload []byte, header string, now time.Time) error {
	if secret == "" {
		return ErrNotConfigured
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return errors.New("leadhook: invalid signature header format")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errors.New("leadhook: invalid timestamp in signature header")
	}
	if now.Sub(time.Unix(ts, 0)) > MaxSignatureAge {
		return errors.New("leadhook: signature timestamp too old")
	}

	expected := mac(secret, timestamp, payload)
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return errors.New("leadhook: signature verification failed")
}

func mac(secret, timestamp string, payload []byte) string {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(timestamp + "."))
	m.Write(payload)
	return hex.EncodeToString(m.Sum(nil))
}

// NopSink drops every event. It is used when no webhook is configured.
type NopSink struct{}

func (NopSink) Send(context.Context, Event) error { return nil }
