// Package wms talks to the warehouse-management order API.
package wms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

// Order ids reported when the API accepted the upload but the id could not
// be read from the response.
const (
	OrderIDNotFound  = "ID_NOT_FOUND"
	OrderIDJSONError = "ID_NOT_FOUND_JSON_ERROR"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HTTPError is a non-2xx answer; Body is the response text.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Status)
}

type Client struct {
	url         string
	requesterID string
	category    int
	subCategory int
	http        *http.Client
}

func New(url, requesterID string, category, subCategory int, timeout time.Duration) *Client {
	return &Client{
		url:         strings.TrimRight(url, "/"),
		requesterID: requesterID,
		category:    category,
		subCategory: subCategory,
		http:        &http.Client{Timeout: timeout},
	}
}

// Upload is one order file for an origin/destination warehouse pair.
type Upload struct {
	OriginID  string
	DestinyID string
	FileName  string
	File      io.Reader
}

// Result of an accepted upload. JSONError is set when the body was not JSON.
type Result struct {
	OrderID   string
	JSONError bool
}

// CreateOrder posts the upload as multipart form data.
func (c *Client) CreateOrder(ctx context.Context, token string, up Upload) (Result, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fields := [][2]string{
		{"warehouseOriginId", up.OriginID},
		{"category", strconv.Itoa(c.category)},
		{"SubCategory", strconv.Itoa(c.subCategory)},
		{"requesterId", c.requesterID},
		{"warehouseDestinyId", up.DestinyID},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return Result{}, err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, up.FileName))
	h.Set("Content-Type", xlsxContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return Result{}, err
	}
	if _, err := io.Copy(part, up.File); err != nil {
		return Result{}, fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &HTTPError{Status: resp.StatusCode, Body: string(raw)}
	}
	return parseOrderID(raw), nil
}

// parseOrderID reads result.code from the response body.
func parseOrderID(raw []byte) Result {
	var payload struct {
		Result json.RawMessage `json:"result"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&payload); err != nil {
		return Result{OrderID: OrderIDJSONError, JSONError: true}
	}

	var result struct {
		Code json.RawMessage `json:"code"`
	}
	if len(payload.Result) == 0 || json.Unmarshal(payload.Result, &result) != nil {
		return Result{OrderID: OrderIDNotFound}
	}

	var s string
	if err := json.Unmarshal(result.Code, &s); err == nil && s != "" {
		return Result{OrderID: s}
	}
	var n json.Number
	if err := json.Unmarshal(result.Code, &n); err == nil && n != "" {
		return Result{OrderID: n.String()}
	}
	return Result{OrderID: OrderIDNotFound}
}
