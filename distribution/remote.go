package distribution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-launcher/core"
	"github.com/goliatone/go-launcher/transport"
)

const (
	operationPullRemote = "Pull Remote"
	deviceHeader        = "device"
)

// RemoteSource fetches the manifest from its origin. A failed pull reports
// Status ERROR with nil Data.
type RemoteSource interface {
	Pull(ctx context.Context) core.Response[json.RawMessage]
}

type Remote struct {
	fetcher     core.Fetcher
	url         string
	authHeaders map[string]string
	deviceID    string
	logger      core.Logger
}

func NewRemote(fetcher core.Fetcher, url string, authHeaders map[string]string, deviceID string, logger core.Logger) *Remote {
	if fetcher == nil {
		fetcher = transport.NewClient(nil)
	}
	return &Remote{
		fetcher:     fetcher,
		url:         strings.TrimSpace(url),
		authHeaders: cloneHeaders(authHeaders),
		deviceID:    deviceID,
		logger:      core.ResolveLogger("distribution", nil, logger),
	}
}

func (r *Remote) Pull(ctx context.Context) core.Response[json.RawMessage] {
	headers := cloneHeaders(r.authHeaders)
	headers[deviceHeader] = r.deviceID
	headers["Accept"] = "application/json"

	res, err := r.fetcher.Do(ctx, core.TransportRequest{
		Operation: operationPullRemote,
		Method:    http.MethodGet,
		URL:       r.url,
		Headers:   headers,
	})
	if err != nil {
		transport.LogFailure(r.logger, operationPullRemote, err)
		return core.Failure[json.RawMessage](core.AsTransportFailure(err), nil)
	}
	doc, err := transport.DecodeRawJSON(operationPullRemote, res)
	if err == nil && isNullDocument(doc) {
		err = &core.TransportFailure{
			Kind:       core.FailureMalformedResponse,
			Operation:  operationPullRemote,
			URL:        r.url,
			StatusCode: res.StatusCode,
			Body:       res.Body,
			Cause:      fmt.Errorf("distribution: remote document is null"),
		}
	}
	if err != nil {
		transport.LogFailure(r.logger, operationPullRemote, err)
		return core.Failure[json.RawMessage](core.AsTransportFailure(err), nil)
	}
	return core.Success(doc)
}

// isNullDocument reports whether doc is the JSON literal null, which never
// counts as a manifest.
func isNullDocument(doc []byte) bool {
	return bytes.Equal(bytes.TrimSpace(doc), []byte("null"))
}

func cloneHeaders(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+2)
	for key, value := range in {
		out[key] = value
	}
	return out
}

var _ RemoteSource = (*Remote)(nil)
