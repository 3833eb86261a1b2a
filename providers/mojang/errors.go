package mojang

import (
	"strings"

	"github.com/goliatone/go-launcher/core"
)

type ErrorCode string

const (
	ErrorMethodNotAllowed      ErrorCode = "ERROR_METHOD_NOT_ALLOWED"
	ErrorNotFound              ErrorCode = "ERROR_NOT_FOUND"
	ErrorUserMigrated          ErrorCode = "ERROR_USER_MIGRATED"
	ErrorInvalidCredentials    ErrorCode = "ERROR_INVALID_CREDENTIALS"
	ErrorRateLimit             ErrorCode = "ERROR_RATELIMIT"
	ErrorInvalidToken          ErrorCode = "ERROR_INVALID_TOKEN"
	ErrorAccessTokenHasProfile ErrorCode = "ERROR_ACCESS_TOKEN_HAS_PROFILE"
	ErrorCredentialsMissing    ErrorCode = "ERROR_CREDENTIALS_MISSING"
	ErrorInvalidSaltVersion    ErrorCode = "ERROR_INVALID_SALT_VERSION"
	ErrorUnsupportedMediaType  ErrorCode = "ERROR_UNSUPPORTED_MEDIA_TYPE"
	ErrorGone                  ErrorCode = "ERROR_GONE"
	ErrorUnreachable           ErrorCode = "ERROR_UNREACHABLE"
	ErrorNotPaid               ErrorCode = "ERROR_NOT_PAID"
	ErrorUnknown               ErrorCode = "UNKNOWN"
)

// ErrorBody is the Yggdrasil error object.
type ErrorBody struct {
	Error        string `json:"error"`
	ErrorMessage string `json:"errorMessage"`
	Cause        string `json:"cause,omitempty"`
}

// Keys are "<error>", "<error>#<errorMessage>" or "<error>#cause:<cause>".
var errorCodes = map[string]ErrorCode{
	"Method Not Allowed":     ErrorMethodNotAllowed,
	"Not Found":              ErrorNotFound,
	"Unsupported Media Type": ErrorUnsupportedMediaType,
	"ResourceException":      ErrorGone,
	"GoneException":          ErrorGone,
	"InvalidCredentials":     ErrorInvalidCredentials,
	"InvalidToken":           ErrorInvalidToken,
	"RateLimit":              ErrorRateLimit,

	"ForbiddenOperationException#cause:UserMigratedException":                        ErrorUserMigrated,
	"ForbiddenOperationException#Invalid credentials. Invalid username or password.": ErrorInvalidCredentials,
	"ForbiddenOperationException#Invalid credentials.":                               ErrorRateLimit,
	"ForbiddenOperationException#Invalid token.":                                     ErrorInvalidToken,
	"ForbiddenOperationException#Forbidden":                                          ErrorCredentialsMissing,
	"IllegalArgumentException#Access token already has a profile assigned.":          ErrorAccessTokenHasProfile,
	"IllegalArgumentException#Invalid salt version":                                  ErrorInvalidSaltVersion,
}

// Internal codes point at a launcher or provider fault rather than anything
// the user can correct.
var internalErrorCodes = []ErrorCode{
	ErrorMethodNotAllowed,
	ErrorNotFound,
	ErrorAccessTokenHasProfile,
	ErrorCredentialsMissing,
	ErrorInvalidSaltVersion,
	ErrorUnsupportedMediaType,
}

var classifier = core.NewClassifier(core.ClassifierTable[ErrorCode]{
	Provider:    "mojang",
	Codes:       errorCodes,
	Unknown:     ErrorUnknown,
	Unreachable: ErrorUnreachable,
	Internal:    internalErrorCodes,
	Identify:    identifyErrorBody,
})

func identifyErrorBody(body []byte) []string {
	errorType, ok := core.BodyField(body, "error")
	if !ok {
		return nil
	}
	keys := make([]string, 0, 3)
	if cause, ok := core.BodyField(body, "cause"); ok {
		keys = append(keys, errorType+"#cause:"+cause)
	}
	if message, ok := core.BodyField(body, "errorMessage"); ok {
		keys = append(keys, errorType+"#"+message)
	}
	return append(keys, errorType)
}

// DecipherErrorCode maps a decoded error body onto an ErrorCode.
func DecipherErrorCode(body ErrorBody) ErrorCode {
	errorType := strings.TrimSpace(body.Error)
	if errorType == "" {
		return ErrorUnknown
	}
	if cause := strings.TrimSpace(body.Cause); cause != "" {
		if code := classifier.Lookup(errorType + "#cause:" + cause); code != ErrorUnknown {
			return code
		}
	}
	if message := strings.TrimSpace(body.ErrorMessage); message != "" {
		if code := classifier.Lookup(errorType + "#" + message); code != ErrorUnknown {
			return code
		}
	}
	return classifier.Lookup(errorType)
}

func IsInternalError(code ErrorCode) bool {
	return classifier.IsInternal(code)
}

// Classify maps any failure returned by this provider's transport calls.
func Classify(err error) core.ClassifiedError[ErrorCode] {
	return classifier.Classify(err)
}
