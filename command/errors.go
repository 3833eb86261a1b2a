package command

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-launcher/core"
)

func commandDependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.LauncherErrorInternal)
}

func commandValidationError(field string, message string) error {
	return goerrors.NewValidation("command: validation failed", goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.LauncherErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}

// commandProviderError lifts a failed provider response into the go-errors
// envelope, keeping the provider code as metadata.
func commandProviderError(err error, providerCode string) error {
	rich := core.AsTransportFailure(err).ToServiceError()
	if providerCode != "" {
		rich.WithMetadata(map[string]any{"provider_code": providerCode})
	}
	return rich
}
