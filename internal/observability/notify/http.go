package notify

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

// maxErrorBody bounds how much of a failed response is kept in StatusError.
const maxErrorBody = 4 << 10

// StatusError reports a non-2xx response from a notification endpoint.
type StatusError struct {
	Service string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d %s: %s", e.Service, e.Status, http.StatusText(e.Status), e.Body)
}

// Retryable reports whether another attempt may succeed.
func (e *StatusError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// Poster sends JSON documents to a webhook style endpoint. Transport errors
// and retryable statuses are retried RetryLimit times with linear backoff.
type Poster struct {
	Service    string
	Client     *http.Client
	RetryLimit int
	Backoff    time.Duration
}

// NewPoster returns a Poster with a client bounded by timeout.
func NewPoster(service string, client *http.Client, timeout time.Duration, retries int) Poster {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return Poster{Service: service, Client: client, RetryLimit: max(retries, 0), Backoff: 200 * time.Millisecond}
}

// PostJSON encodes v and posts it to url.
func (p Poster) PostJSON(ctx context.Context, url string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", p.Service, err)
	}

	var lastErr error
	for attempt := range p.RetryLimit + 1 {
		if attempt > 0 {
			timer := time.NewTimer(time.Duration(attempt) * p.Backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return errors.Join(lastErr, ctx.Err())
			case <-timer.C:
			}
		}
		lastErr = p.post(ctx, url, body)
		if lastErr == nil {
			return nil
		}
		var se *StatusError
		if errors.As(lastErr, &se) && !se.Retryable() {
			return lastErr
		}
	}
	return lastErr
}

func (p Poster) post(ctx context.Context, url string, body []byte) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", p.Service, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", p.Service, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close %s response: %w", p.Service, closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return fmt.Errorf("read %s error response: %w", p.Service, readErr)
		}
		return &StatusError{Service: p.Service, Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("drain %s response: %w", p.Service, err)
	}
	return nil
}
