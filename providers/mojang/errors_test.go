package mojang

import (
	"net/http"
	"testing"

	"github.com/goliatone/go-launcher/core"
)

func TestDecipherErrorCode(t *testing.T) {
	cases := []struct {
		name string
		body ErrorBody
		want ErrorCode
	}{
		{name: "method not allowed", body: ErrorBody{Error: "Method Not Allowed"}, want: ErrorMethodNotAllowed},
		{name: "not found", body: ErrorBody{Error: "Not Found"}, want: ErrorNotFound},
		{name: "user migrated", body: ErrorBody{Error: "ForbiddenOperationException", ErrorMessage: "Invalid credentials. Account migrated, use email as username.", Cause: "UserMigratedException"}, want: ErrorUserMigrated},
		{name: "invalid credentials", body: ErrorBody{Error: "ForbiddenOperationException", ErrorMessage: "Invalid credentials. Invalid username or password."}, want: ErrorInvalidCredentials},
		{name: "rate limit", body: ErrorBody{Error: "ForbiddenOperationException", ErrorMessage: "Invalid credentials."}, want: ErrorRateLimit},
		{name: "invalid token", body: ErrorBody{Error: "ForbiddenOperationException", ErrorMessage: "Invalid token."}, want: ErrorInvalidToken},
		{name: "credentials missing", body: ErrorBody{Error: "ForbiddenOperationException", ErrorMessage: "Forbidden"}, want: ErrorCredentialsMissing},
		{name: "token has profile", body: ErrorBody{Error: "IllegalArgumentException", ErrorMessage: "Access token already has a profile assigned."}, want: ErrorAccessTokenHasProfile},
		{name: "salt version", body: ErrorBody{Error: "IllegalArgumentException", ErrorMessage: "Invalid salt version"}, want: ErrorInvalidSaltVersion},
		{name: "media type", body: ErrorBody{Error: "Unsupported Media Type"}, want: ErrorUnsupportedMediaType},
		{name: "gone", body: ErrorBody{Error: "GoneException"}, want: ErrorGone},
		{name: "resource gone", body: ErrorBody{Error: "ResourceException"}, want: ErrorGone},
		{name: "unmapped message", body: ErrorBody{Error: "ForbiddenOperationException", ErrorMessage: "Something new"}, want: ErrorUnknown},
		{name: "unmapped type", body: ErrorBody{Error: "TeapotException"}, want: ErrorUnknown},
		{name: "empty", body: ErrorBody{}, want: ErrorUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecipherErrorCode(tc.body); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestClassify_ResponseBodies(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		want     ErrorCode
		internal bool
	}{
		{name: "cause wins over message", body: `{"error":"ForbiddenOperationException","errorMessage":"Invalid credentials.","cause":"UserMigratedException"}`, want: ErrorUserMigrated},
		{name: "internal code", body: `{"error":"IllegalArgumentException","errorMessage":"Invalid salt version"}`, want: ErrorInvalidSaltVersion, internal: true},
		{name: "not an object", body: `["error"]`, want: ErrorUnknown},
		{name: "not json", body: `Bad Gateway`, want: ErrorUnknown},
		{name: "non-string error", body: `{"error":42}`, want: ErrorUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(&core.TransportFailure{
				Kind:       core.FailureProtocol,
				StatusCode: http.StatusForbidden,
				Body:       []byte(tc.body),
			})
			if got.Code != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got.Code)
			}
			if got.Internal != tc.internal {
				t.Fatalf("expected internal=%v, got %v", tc.internal, got.Internal)
			}
		})
	}
}

func TestClassify_WithoutResponse(t *testing.T) {
	if got := Classify(&core.TransportFailure{Kind: core.FailureTransportUnreachable}); got.Code != ErrorUnreachable {
		t.Fatalf("expected %s, got %s", ErrorUnreachable, got.Code)
	}
	if got := Classify(&core.TransportFailure{Kind: core.FailureTimeout}); got.Code != ErrorUnknown {
		t.Fatalf("expected timeout to be unknown, got %s", got.Code)
	}
	if got := Classify(nil); got.Code != ErrorUnknown {
		t.Fatalf("expected nil error to be unknown, got %s", got.Code)
	}
}

func TestIsInternalError(t *testing.T) {
	internal := []ErrorCode{
		ErrorMethodNotAllowed,
		ErrorNotFound,
		ErrorAccessTokenHasProfile,
		ErrorCredentialsMissing,
		ErrorInvalidSaltVersion,
		ErrorUnsupportedMediaType,
	}
	for _, code := range internal {
		if !IsInternalError(code) {
			t.Fatalf("expected %s to be internal", code)
		}
	}
	for _, code := range []ErrorCode{ErrorInvalidCredentials, ErrorRateLimit, ErrorUserMigrated, ErrorUnreachable, ErrorUnknown} {
		if IsInternalError(code) {
			t.Fatalf("expected %s to be user facing", code)
		}
	}
}

func TestStatusToHex(t *testing.T) {
	cases := map[string]string{
		"green":  "#a5c325",
		"yellow": "#eac918",
		"red":    "#c32625",
		"grey":   "#848484",
		"purple": "#848484",
	}
	for status, want := range cases {
		if got := StatusToHex(status); got != want {
			t.Fatalf("StatusToHex(%q) = %q, want %q", status, got, want)
		}
	}
}
