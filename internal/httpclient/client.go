// Package httpclient builds the HTTP clients used for background images and
// fetches small bodies with a size cap.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/oukeidos/promise/internal/version"
)

const (
	// MaxResponseBytes caps response bodies. A 720x1280 JPEG is well below it.
	MaxResponseBytes = 8 << 20

	MaxIdleConns          = 20
	MaxIdleConnsPerHost   = 4
	IdleConnTimeout       = 90 * time.Second
	TLSHandshakeTimeout   = 30 * time.Second
	ExpectContinueTimeout = 2 * time.Second
)

var ErrTooLarge = fmt.Errorf("response body too large (limit %d bytes)", MaxResponseBytes)

// StatusError is returned by Get for non-2xx responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d %s", e.Code, http.StatusText(e.Code))
}

// Temporary reports statuses worth retrying on the next load.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// NewClient returns a client with pooled connections. A zero timeout leaves
// requests bounded only by their context.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          MaxIdleConns,
			MaxIdleConnsPerHost:   MaxIdleConnsPerHost,
			IdleConnTimeout:       IdleConnTimeout,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ExpectContinueTimeout: ExpectContinueTimeout,
		},
	}
}

var shared = sync.OnceValue(func() *http.Client { return NewClient(0) })

// GetDefaultClient returns the process-wide client. It has no timeout.
func GetDefaultClient() *http.Client {
	return shared()
}

// Get fetches url and returns the body of a 2xx response.
func Get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "promise/"+version.Version)
	req.Header.Set("Accept", "image/*")

	body, resp, err := DoAndRead(client, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	return body, nil
}

// DoAndRead sends req and reads at most MaxResponseBytes of the body. The
// body is always closed.
func DoAndRead(client *http.Client, req *http.Request) ([]byte, *http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.ContentLength > MaxResponseBytes {
		return nil, resp, ErrTooLarge
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, resp, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxResponseBytes {
		return nil, resp, ErrTooLarge
	}
	return body, resp, nil
}

// IsTemporary reports whether err is a retryable status or a timeout.
func IsTemporary(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return errors.Is(err, context.DeadlineExceeded)
}
