// Package backend is the HTTP client for the travel agency REST backend.
// The booking desk never talks to the backend any other way.
package backend

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
    "time"
)

// StatusError is returned when the backend answers with a non-2xx status.
// Message holds the server supplied message and may be empty.
type StatusError struct {
    Status  int
    Message string
}

func (e *StatusError) Error() string {
    if e.Message == "" {
        return fmt.Sprintf("backend: status %d", e.Status)
    }
    return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
}

// Client issues requests against the backend base URL.  Any error that is
// not a *StatusError is a transport failure (dial, timeout, bad body).
type Client struct {
    baseURL string
    http    *http.Client
}

// NewClient returns a Client for baseURL (e.g. http://localhost:5000).
// A non-positive timeout disables the per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
    hc := &http.Client{}
    if timeout > 0 {
        hc.Timeout = timeout
    }
    return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// CreateBooking posts a booking.  token is the caller's bearer token and
// may be empty.
func (c *Client) CreateBooking(ctx context.Context, token string, req CreateBookingRequest) (CreateBookingResult, error) {
    var out CreateBookingResult
    if err := c.do(ctx, http.MethodPost, "/api/bookings", nil, token, req, &out); err != nil {
        return CreateBookingResult{}, err
    }
    return out, nil
}

// FetchPNR looks up a reservation by its PNR.
func (c *Client) FetchPNR(ctx context.Context, token, pnr string) (PNRResult, error) {
    var out PNRResult
    q := url.Values{"pnr": []string{pnr}}
    if err := c.do(ctx, http.MethodGet, "/api/pnr/fetch", q, token, nil, &out); err != nil {
        return PNRResult{}, err
    }
    return out, nil
}

// DownloadURL builds the artifact URL for a created booking.  The desk
// hands it to the browser; it is never requested here.
func (c *Client) DownloadURL(id ID) string {
    return c.baseURL + "/api/bookings/download/" + url.PathEscape(string(id))
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, token string, body, out any) error {
    u := c.baseURL + path
    if len(q) > 0 {
        u += "?" + q.Encode()
    }

    var rd io.Reader
    if body != nil {
        b, err := json.Marshal(body)
        if err != nil {
            return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
        }
        rd = bytes.NewReader(b)
    }

    req, err := http.NewRequestWithContext(ctx, method, u, rd)
    if err != nil {
        return fmt.Errorf("backend: build %s %s: %w", method, path, err)
    }
    req.Header.Set("Accept", "application/json")
    if body != nil {
        req.Header.Set("Content-Type", "application/json")
    }
    if token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }

    resp, err := c.http.Do(req)
    if err != nil {
        return fmt.Errorf("backend: %s %s: %w", method, path, err)
    }
    defer resp.Body.Close()

    raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
    if err != nil {
        return fmt.Errorf("backend: read %s %s: %w", method, path, err)
    }

    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        var eb errorBody
        _ = json.Unmarshal(raw, &eb) // non-JSON error pages carry no message
        msg := eb.Message
        if msg == "" {
            msg = eb.Error
        }
        return &StatusError{Status: resp.StatusCode, Message: msg}
    }

    if out == nil || len(bytes.TrimSpace(raw)) == 0 {
        return nil
    }
    if err := json.Unmarshal(raw, out); err != nil {
        return fmt.Errorf("backend: decode %s %s: %w", method, path, err)
    }
    return nil
}

// IsStatus reports whether err carries a backend *StatusError.
func IsStatus(err error) (*StatusError, bool) {
    var se *StatusError
    if errors.As(err, &se) {
        return se, true
    }
    return nil, false
}
