package visr

import (
	"encoding/json"
	"strings"

	"github.com/goliatone/go-launcher/core"
)

type ErrorCode string

const (
	ErrorInvalidRequest     ErrorCode = "ERROR_INVALID_REQUEST"
	ErrorInvalidDevice      ErrorCode = "ERROR_INVALID_DEVICE"
	ErrorInvalidCredentials ErrorCode = "ERROR_INVALID_CREDENTIALS"
	ErrorRateLimit          ErrorCode = "ERROR_RATELIMIT"
	ErrorAccountBanned      ErrorCode = "ERROR_ACCOUNT_BANNED"
	ErrorInvalidToken       ErrorCode = "ERROR_INVALID_TOKEN"
	ErrorNoMinecraftAccount ErrorCode = "ERROR_NO_MINECRAFT_ACCOUNT"
	ErrorUnreachable        ErrorCode = "ERROR_UNREACHABLE"
	ErrorUnknown            ErrorCode = "UNKNOWN"
)

type ErrorBody struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

var errorCodes = map[string]ErrorCode{
	"ERROR_INVALID_REQUEST": ErrorInvalidRequest,
	"ERROR_INVALID_DEVICE":  ErrorInvalidDevice,
	"InvalidCredentials":    ErrorInvalidCredentials,
	"RateLimit":             ErrorRateLimit,
	"ERROR_ACCOUNT_BANNED":  ErrorAccountBanned,
	"InvalidToken":          ErrorInvalidToken,
	"NoMinecraftAccount":    ErrorNoMinecraftAccount,
}

var classifier = core.NewClassifier(core.ClassifierTable[ErrorCode]{
	Provider:    "visr",
	Codes:       errorCodes,
	Unknown:     ErrorUnknown,
	Unreachable: ErrorUnreachable,
	Internal:    []ErrorCode{ErrorInvalidRequest, ErrorInvalidDevice},
	Identify:    core.FieldIdentifier("error"),
})

func DecipherErrorCode(body ErrorBody) ErrorCode {
	return classifier.Lookup(body.Error)
}

func IsInternalError(code ErrorCode) bool {
	return classifier.IsInternal(code)
}

func Classify(err error) core.ClassifiedError[ErrorCode] {
	return classifier.Classify(err)
}

// decodeErrorBody returns the service error object carried by a failed
// response, or nil when there is none.
func decodeErrorBody(failure *core.TransportFailure) *ErrorBody {
	if !failure.HasResponse() || len(failure.Body) == 0 {
		return nil
	}
	var body ErrorBody
	if err := json.Unmarshal(failure.Body, &body); err != nil {
		return nil
	}
	if strings.TrimSpace(body.Error) == "" && strings.TrimSpace(body.Message) == "" {
		return nil
	}
	return &body
}
