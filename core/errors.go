package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	LauncherErrorBadInput                = "LAUNCHER_BAD_INPUT"
	LauncherErrorUnreachable             = "LAUNCHER_UNREACHABLE"
	LauncherErrorTimeout                 = "LAUNCHER_TIMEOUT"
	LauncherErrorProtocol                = "LAUNCHER_PROTOCOL_ERROR"
	LauncherErrorMalformedResponse       = "LAUNCHER_MALFORMED_RESPONSE"
	LauncherErrorNotFound                = "LAUNCHER_NOT_FOUND"
	LauncherErrorUnknown                 = "LAUNCHER_UNKNOWN"
	LauncherErrorInternal                = "LAUNCHER_INTERNAL_ERROR"
	LauncherErrorDistributionUnavailable = "DISTRIBUTION_UNAVAILABLE"
)

type FailureKind string

const (
	FailureTransportUnreachable FailureKind = "transport_unreachable"
	FailureTimeout              FailureKind = "timeout"
	FailureProtocol             FailureKind = "protocol_error"
	FailureMalformedResponse    FailureKind = "malformed_response"
	FailureNotFound             FailureKind = "not_found"
	FailureInvalidRequest       FailureKind = "invalid_request"
	FailureUnknown              FailureKind = "unknown"
)

var ErrDistributionUnavailable = errors.New("distribution: unable to load distribution from remote server or local disk")

// TransportFailure captures one failed remote call. StatusCode and Body are
// set only when the server answered.
type TransportFailure struct {
	Kind       FailureKind
	Operation  string
	URL        string
	StatusCode int
	Body       []byte
	Cause      error
}

func (f *TransportFailure) Error() string {
	if f == nil {
		return "transport: request failed"
	}
	parts := []string{"transport"}
	if op := strings.TrimSpace(f.Operation); op != "" {
		parts = append(parts, op)
	}
	parts = append(parts, string(f.kind()))
	message := strings.Join(parts, ": ")
	if f.StatusCode > 0 {
		message += fmt.Sprintf(" (status=%d)", f.StatusCode)
	}
	if f.Cause != nil {
		message += ": " + f.Cause.Error()
	}
	return message
}

func (f *TransportFailure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Cause
}

// HasResponse reports whether the server produced an HTTP answer.
func (f *TransportFailure) HasResponse() bool {
	return f != nil && f.StatusCode > 0
}

func (f *TransportFailure) kind() FailureKind {
	if f == nil || strings.TrimSpace(string(f.Kind)) == "" {
		return FailureUnknown
	}
	return f.Kind
}

func (f *TransportFailure) ToServiceError() *goerrors.Error {
	kind := f.kind()
	category, code, textCode := failureEnvelope(kind)
	if f != nil && f.StatusCode > 0 {
		code = f.StatusCode
	}
	var err *goerrors.Error
	if f != nil && f.Cause != nil {
		err = goerrors.Wrap(f.Cause, category, f.Error())
	} else {
		err = goerrors.New(f.Error(), category)
	}
	err = err.WithCode(code).WithTextCode(textCode)
	if f != nil {
		metadata := map[string]any{"kind": string(kind)}
		if f.Operation != "" {
			metadata["operation"] = f.Operation
		}
		if f.URL != "" {
			metadata["url"] = f.URL
		}
		if f.StatusCode > 0 {
			metadata["status_code"] = f.StatusCode
		}
		err.WithMetadata(metadata)
	}
	return err
}

func failureEnvelope(kind FailureKind) (goerrors.Category, int, string) {
	switch kind {
	case FailureTransportUnreachable:
		return goerrors.CategoryExternal, http.StatusBadGateway, LauncherErrorUnreachable
	case FailureTimeout:
		return goerrors.CategoryExternal, http.StatusGatewayTimeout, LauncherErrorTimeout
	case FailureProtocol:
		return goerrors.CategoryExternal, http.StatusBadGateway, LauncherErrorProtocol
	case FailureMalformedResponse:
		return goerrors.CategoryExternal, http.StatusBadGateway, LauncherErrorMalformedResponse
	case FailureNotFound:
		return goerrors.CategoryNotFound, http.StatusNotFound, LauncherErrorNotFound
	case FailureInvalidRequest:
		return goerrors.CategoryBadInput, http.StatusBadRequest, LauncherErrorBadInput
	default:
		return goerrors.CategoryInternal, http.StatusInternalServerError, LauncherErrorUnknown
	}
}

// AsTransportFailure returns err as a *TransportFailure, wrapping foreign
// errors as FailureUnknown.
func AsTransportFailure(err error) *TransportFailure {
	if err == nil {
		return nil
	}
	var failure *TransportFailure
	if errors.As(err, &failure) && failure != nil {
		return failure
	}
	return &TransportFailure{Kind: FailureUnknown, Cause: err}
}

func DistributionUnavailableError(paths ...string) *goerrors.Error {
	err := goerrors.Wrap(ErrDistributionUnavailable, goerrors.CategoryNotFound, "FATAL: "+ErrDistributionUnavailable.Error()).
		WithCode(http.StatusServiceUnavailable).
		WithTextCode(LauncherErrorDistributionUnavailable)
	if len(paths) > 0 {
		err.WithMetadata(map[string]any{"paths": append([]string(nil), paths...)})
	}
	return err
}

func BadInputError(message string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(LauncherErrorBadInput)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func InternalError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(LauncherErrorInternal)
}

func WrapIOError(source error, message string, path string) *goerrors.Error {
	err := goerrors.Wrap(source, goerrors.CategoryInternal, message).
		WithCode(http.StatusInternalServerError).
		WithTextCode(LauncherErrorInternal)
	err.WithMetadata(map[string]any{"path": path})
	return err
}
