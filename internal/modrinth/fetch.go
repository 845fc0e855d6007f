package modrinth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type fetchStatus int

const (
	statusOK     fetchStatus = iota
	statusEmpty              // the resource does not exist (404)
	statusFailed             // transport error, bad status, or undecodable body
)

// fetchResult is the single result shape of every API read.
type fetchResult[T any] struct {
	value  T
	status fetchStatus
	err    error
}

// getJSON performs one GET against the API and decodes the body into T.
// It never retries; failures are logged and reported as statusFailed.
func getJSON[T any](ctx context.Context, c *Client, path string) fetchResult[T] {
	var res fetchResult[T]

	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return failed(c, res, path, fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return failed(c, res, path, fmt.Errorf("network error: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.logger.Debug("not found", "path", path)
		res.status = statusEmpty
		return res
	case resp.StatusCode != http.StatusOK:
		return failed(c, res, path, fmt.Errorf("unexpected status %s", resp.Status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return failed(c, res, path, fmt.Errorf("reading response: %w", err))
	}
	if err := json.Unmarshal(data, &res.value); err != nil {
		return failed(c, res, path, fmt.Errorf("decoding response: %w", err))
	}
	res.status = statusOK
	return res
}

func failed[T any](c *Client, res fetchResult[T], path string, err error) fetchResult[T] {
	c.logger.Error("request failed", "path", path, "err", err)
	res.status = statusFailed
	res.err = err
	return res
}
