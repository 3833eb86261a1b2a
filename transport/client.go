package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-launcher/core"
)

const defaultClientTimeout = 30 * time.Second
const defaultResponseBodyLimit int64 = 10 << 20 // 10 MiB

// Client performs one HTTP exchange per call over an injected HTTPDoer. All
// expected failures come back as *core.TransportFailure.
type Client struct {
	Doer                 core.HTTPDoer
	DefaultHeaders       map[string]string
	MaxResponseBodyBytes int64
}

func NewClient(doer core.HTTPDoer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: defaultClientTimeout}
	}
	return &Client{
		Doer:                 doer,
		DefaultHeaders:       map[string]string{},
		MaxResponseBodyBytes: defaultResponseBodyLimit,
	}
}

func (c *Client) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if c == nil || c.Doer == nil {
		return core.TransportResponse{}, &core.TransportFailure{
			Kind:      core.FailureInvalidRequest,
			Operation: req.Operation,
			Cause:     fmt.Errorf("transport: client requires an http doer"),
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := strings.TrimSpace(strings.ToUpper(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	rawURL := strings.TrimSpace(req.URL)
	parsedURL, err := url.Parse(rawURL)
	if err != nil || rawURL == "" {
		if err == nil {
			err = fmt.Errorf("transport: request url is required")
		}
		return core.TransportResponse{}, &core.TransportFailure{
			Kind:      core.FailureInvalidRequest,
			Operation: req.Operation,
			URL:       rawURL,
			Cause:     err,
		}
	}

	requestCtx := ctx
	cancel := func() {}
	if req.Timeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, req.Timeout)
	}
	defer cancel()

	var body io.Reader = http.NoBody
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(requestCtx, method, parsedURL.String(), body)
	if err != nil {
		return core.TransportResponse{}, &core.TransportFailure{
			Kind:      core.FailureInvalidRequest,
			Operation: req.Operation,
			URL:       parsedURL.String(),
			Cause:     err,
		}
	}
	applyHeaders(httpReq.Header, c.DefaultHeaders)
	applyHeaders(httpReq.Header, req.Headers)

	startedAt := time.Now().UTC()
	httpRes, err := c.Doer.Do(httpReq)
	if err != nil {
		return core.TransportResponse{}, &core.TransportFailure{
			Kind:      classifyCause(err),
			Operation: req.Operation,
			URL:       parsedURL.String(),
			Cause:     err,
		}
	}
	defer httpRes.Body.Close()

	maxBodyBytes := resolveResponseBodyLimit(c.MaxResponseBodyBytes)
	payload, err := io.ReadAll(io.LimitReader(httpRes.Body, maxBodyBytes+1))
	if err != nil {
		return core.TransportResponse{}, &core.TransportFailure{
			Kind:       classifyCause(err),
			Operation:  req.Operation,
			URL:        parsedURL.String(),
			StatusCode: httpRes.StatusCode,
			Cause:      fmt.Errorf("transport: read response body: %w", err),
		}
	}
	if int64(len(payload)) > maxBodyBytes {
		return core.TransportResponse{}, &core.TransportFailure{
			Kind:       core.FailureMalformedResponse,
			Operation:  req.Operation,
			URL:        parsedURL.String(),
			StatusCode: httpRes.StatusCode,
			Cause:      fmt.Errorf("transport: response body exceeds limit of %d bytes", maxBodyBytes),
		}
	}

	response := core.TransportResponse{
		StatusCode: httpRes.StatusCode,
		Headers:    flattenHeaders(httpRes.Header),
		Body:       payload,
		Metadata: map[string]any{
			"duration_ms": time.Since(startedAt).Milliseconds(),
			"method":      method,
			"url":         parsedURL.String(),
		},
	}
	if httpRes.StatusCode < http.StatusOK || httpRes.StatusCode >= http.StatusMultipleChoices {
		return response, &core.TransportFailure{
			Kind:       core.FailureProtocol,
			Operation:  req.Operation,
			URL:        parsedURL.String(),
			StatusCode: httpRes.StatusCode,
			Body:       payload,
		}
	}
	return response, nil
}

func applyHeaders(target http.Header, headers map[string]string) {
	for key, value := range headers {
		if strings.TrimSpace(key) == "" {
			continue
		}
		target.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
}

func flattenHeaders(headers http.Header) map[string]string {
	if len(headers) == 0 {
		return map[string]string{}
	}
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		if len(values) == 0 {
			flat[key] = ""
			continue
		}
		flat[key] = strings.Join(values, ",")
	}
	return flat
}

func resolveResponseBodyLimit(limit int64) int64 {
	if limit > 0 {
		return limit
	}
	return defaultResponseBodyLimit
}

var _ core.Fetcher = (*Client)(nil)
