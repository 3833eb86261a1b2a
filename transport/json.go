package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/goliatone/go-launcher/core"
)

// JSONRequest encodes payload as the body of a request to url.
func JSONRequest(operation string, method string, url string, payload any, headers map[string]string) (core.TransportRequest, error) {
	req := core.TransportRequest{
		Operation: operation,
		Method:    method,
		URL:       url,
		Headers: map[string]string{
			"Accept": "application/json",
		},
	}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return core.TransportRequest{}, &core.TransportFailure{
				Kind:      core.FailureInvalidRequest,
				Operation: operation,
				URL:       url,
				Cause:     fmt.Errorf("transport: encode request body: %w", err),
			}
		}
		req.Body = body
		req.Headers["Content-Type"] = "application/json"
	}
	for key, value := range headers {
		req.Headers[key] = value
	}
	return req, nil
}

func PostJSON(operation string, url string, payload any, headers map[string]string) (core.TransportRequest, error) {
	return JSONRequest(operation, http.MethodPost, url, payload, headers)
}

// DecodeRawJSON validates a successful response body and returns it as
// served. Only surrounding whitespace is ignored for validation.
func DecodeRawJSON(operation string, res core.TransportResponse) (json.RawMessage, error) {
	if body := bytes.TrimSpace(res.Body); len(body) == 0 || !json.Valid(body) {
		return nil, &core.TransportFailure{
			Kind:       core.FailureMalformedResponse,
			Operation:  operation,
			StatusCode: res.StatusCode,
			Body:       res.Body,
			Cause:      fmt.Errorf("transport: response body is not valid json"),
		}
	}
	return json.RawMessage(bytes.Clone(res.Body)), nil
}

// DecodeJSON decodes a successful response body. Undecodable bodies are
// reported as malformed responses.
func DecodeJSON[T any](operation string, res core.TransportResponse) (T, error) {
	var out T
	body := bytes.TrimSpace(res.Body)
	if len(body) == 0 || !json.Valid(body) {
		return out, &core.TransportFailure{
			Kind:       core.FailureMalformedResponse,
			Operation:  operation,
			StatusCode: res.StatusCode,
			Body:       res.Body,
			Cause:      fmt.Errorf("transport: response body is not valid json"),
		}
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, &core.TransportFailure{
			Kind:       core.FailureMalformedResponse,
			Operation:  operation,
			StatusCode: res.StatusCode,
			Body:       res.Body,
			Cause:      fmt.Errorf("transport: decode response body: %w", err),
		}
	}
	return out, nil
}
