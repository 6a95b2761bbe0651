// Package messaging delivers HTML mail through the message-integration API.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TypeEmail is the API's message type for e-mail.
const TypeEmail = 2

var ErrNoRecipients = errors.New("no mail recipients configured")

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("messaging api status %d: %s", e.Status, e.Body)
}

type Client struct {
	url  string
	http *http.Client
}

func New(url string, timeout time.Duration) *Client {
	return &Client{url: strings.TrimRight(url, "/"), http: &http.Client{Timeout: timeout}}
}

type message struct {
	Recipients []string `json:"recipients"`
	Type       int      `json:"type"`
	Message    string   `json:"message"`
	Title      string   `json:"title"`
}

// Recipients trims and de-duplicates addresses (case-insensitive), keeping
// the first spelling and order.
func Recipients(list []string) []string {
	seen := make(map[string]bool, len(list))
	var out []string
	for _, r := range list {
		r = strings.TrimSpace(r)
		k := strings.ToLower(r)
		if r == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// Send posts one HTML mail. It returns the list it actually sent to.
func (c *Client) Send(ctx context.Context, token, subject, html string, recipients []string) ([]string, error) {
	to := Recipients(recipients)
	if len(to) == 0 {
		return nil, ErrNoRecipients
	}

	body, err := json.Marshal(message{Recipients: to, Type: TypeEmail, Message: html, Title: subject})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{Status: resp.StatusCode, Body: string(raw)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return to, nil
}
