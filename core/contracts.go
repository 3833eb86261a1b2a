package core

import (
	"context"
	"net/http"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type TransportRequest struct {
	Operation string
	Method    string
	URL       string
	Headers   map[string]string
	Body      []byte
	Timeout   time.Duration
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

// Fetcher performs exactly one remote call. Expected failures are returned as
// *TransportFailure values, never panics.
type Fetcher interface {
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

// MachineIDSource returns the raw, platform-specific machine identifier.
type MachineIDSource func() (string, error)

type AccountType string

const (
	AccountTypeMojang    AccountType = "mojang"
	AccountTypeMicrosoft AccountType = "microsoft"
	AccountTypeVISR      AccountType = "visr"
)
