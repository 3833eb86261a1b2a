package visr

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/goliatone/go-launcher/core"
	"github.com/goliatone/go-launcher/identity"
	"github.com/goliatone/go-launcher/transport"
	"github.com/google/go-cmp/cmp"
)

func TestAuthenticate_MapsAccountFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected json content type, got %q", got)
		}
		_, _ = w.Write([]byte(`{
			"rootToken":{"token":"root_1","expires":"2026-12-01T00:00:00Z","refreshed":true},
			"user":{"id":42,"username":"steve","email":"steve@example.com","setup_stage":"complete","isAdmin":true,"support_pin":"1234","legitowner":true},
			"device":{"uuid":"device_1","verified":true,"lastSession":"2026-10-01T00:00:00Z"},
			"minecraftAccounts":[{"id":"uuid1","name":"player1","accessToken":"mc_1","isMain":true}]
		}`))
	}))
	defer server.Close()

	res := newTestService(server.URL, transport.NewClient(server.Client())).
		Authenticate(context.Background(), Credentials{Username: "steve@example.com", Password: "pass123"})
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Error)
	}

	expected := &Account{
		Type:       core.AccountTypeVISR,
		Username:   "steve",
		UserID:     42,
		Email:      "steve@example.com",
		SetupStage: "complete",
		IsAdmin:    true,
		SupportPin: "1234",
		LegitOwner: true,
		RootToken:  RootToken{Token: "root_1", Expires: "2026-12-01T00:00:00Z", Refreshed: true},
		Device:     Device{UUID: "device_1", Verified: true, LastSession: "2026-10-01T00:00:00Z"},
		MinecraftAccounts: []MinecraftAccount{
			{ID: "uuid1", Name: "player1", AccessToken: "mc_1", IsMain: true},
		},
	}
	if diff := cmp.Diff(expected, res.Data); diff != "" {
		t.Fatalf("unexpected account (-want +got):\n%s", diff)
	}
}

func TestAuthenticate_ToleratesSparseSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rootToken":{"token":"test-token-123"},"minecraftAccounts":[{"id":"uuid1","name":"player1"}]}`))
	}))
	defer server.Close()

	res := newTestService(server.URL, transport.NewClient(server.Client())).
		Authenticate(context.Background(), Credentials{Username: "test@example.com", Password: "pass123"})
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Error)
	}
	if res.Data.Type != core.AccountTypeVISR {
		t.Fatalf("expected account type %q, got %q", core.AccountTypeVISR, res.Data.Type)
	}
	if res.Data.RootToken.Token != "test-token-123" {
		t.Fatalf("unexpected root token %q", res.Data.RootToken.Token)
	}
	if len(res.Data.MinecraftAccounts) != 1 {
		t.Fatalf("expected one minecraft account, got %d", len(res.Data.MinecraftAccounts))
	}
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"InvalidCredentials","message":"Invalid username or password","details":["password"]}`))
	}))
	defer server.Close()

	res := newTestService(server.URL, transport.NewClient(server.Client())).
		Authenticate(context.Background(), Credentials{Username: "test@example.com", Password: "wrong"})
	if res.Status != core.ResponseStatusError || res.Error == nil {
		t.Fatalf("expected error response, got %v", res.Status)
	}
	if res.Data != nil {
		t.Fatalf("expected nil account on failure")
	}
	if res.ErrorCode() != ErrorInvalidCredentials {
		t.Fatalf("expected %s, got %s", ErrorInvalidCredentials, res.ErrorCode())
	}
	if res.Detail == nil || res.Detail.Message != "Invalid username or password" {
		t.Fatalf("expected decoded error body, got %#v", res.Detail)
	}
	if !strings.Contains(res.Error.Error(), "Invalid username or password") {
		t.Fatalf("expected error text to carry the service message, got %q", res.Error.Error())
	}
	if diff := cmp.Diff([]string{"password"}, res.Detail.Details); diff != "" {
		t.Fatalf("unexpected details (-want +got):\n%s", diff)
	}
}

func TestAuthenticate_NetworkErrorIsUnknown(t *testing.T) {
	doer := doerFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("network error")
	})
	res := newTestService("https://api.example.com/login", transport.NewClient(doer)).
		Authenticate(context.Background(), Credentials{Username: "test@example.com", Password: "pass123"})
	if res.OK() {
		t.Fatalf("expected failure")
	}
	if res.ErrorCode() != ErrorUnknown {
		t.Fatalf("expected %s, got %s", ErrorUnknown, res.ErrorCode())
	}
	if res.Detail != nil {
		t.Fatalf("expected no error body without a response")
	}
}

func TestAuthenticate_UnreachableHost(t *testing.T) {
	doer := doerFunc(func(*http.Request) (*http.Response, error) {
		return nil, &net.DNSError{Err: "no such host", Name: "api.invalid", IsNotFound: true}
	})
	res := newTestService("https://api.invalid/login", transport.NewClient(doer)).
		Authenticate(context.Background(), Credentials{Username: "u", Password: "p"})
	if res.ErrorCode() != ErrorUnreachable {
		t.Fatalf("expected %s, got %s", ErrorUnreachable, res.ErrorCode())
	}
}

func TestAuthenticate_SendsDeviceTelemetry(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &raw); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		_, _ = w.Write([]byte(`{"rootToken":{"token":"t"},"minecraftAccounts":[]}`))
	}))
	defer server.Close()

	res := newTestService(server.URL, transport.NewClient(server.Client())).
		Authenticate(context.Background(), Credentials{Username: "test@example.com", Password: "pass123"})
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Error)
	}
	if raw["username"] != "test@example.com" || raw["password"] != "pass123" {
		t.Fatalf("unexpected credentials in payload %#v", raw)
	}
	device, ok := raw["device"].(map[string]any)
	if !ok {
		t.Fatalf("expected device object, got %#v", raw["device"])
	}
	keys := make([]string, 0, len(device))
	for key := range device {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	expected := []string{"arch", "cpu", "hostname", "id", "platform", "ram", "release", "type", "uuid"}
	if diff := cmp.Diff(expected, keys); diff != "" {
		t.Fatalf("unexpected device keys (-want +got):\n%s", diff)
	}
	if device["uuid"] != "device_1" || device["platform"] != "darwin" || device["arch"] != "arm64" {
		t.Fatalf("unexpected device values %#v", device)
	}
}

func TestDecipherErrorCode(t *testing.T) {
	cases := map[string]ErrorCode{
		"ERROR_INVALID_REQUEST": ErrorInvalidRequest,
		"ERROR_INVALID_DEVICE":  ErrorInvalidDevice,
		"InvalidCredentials":    ErrorInvalidCredentials,
		"RateLimit":             ErrorRateLimit,
		"ERROR_ACCOUNT_BANNED":  ErrorAccountBanned,
		"InvalidToken":          ErrorInvalidToken,
		"NoMinecraftAccount":    ErrorNoMinecraftAccount,
		"SomethingElse":         ErrorUnknown,
		"":                      ErrorUnknown,
	}
	for identifier, want := range cases {
		if got := DecipherErrorCode(ErrorBody{Error: identifier}); got != want {
			t.Fatalf("DecipherErrorCode(%q) = %s, want %s", identifier, got, want)
		}
	}
	if !IsInternalError(ErrorInvalidRequest) || !IsInternalError(ErrorInvalidDevice) {
		t.Fatalf("expected request and device errors to be internal")
	}
	if IsInternalError(ErrorAccountBanned) {
		t.Fatalf("expected banned accounts to be user facing")
	}
}

func newTestService(endpoint string, fetcher core.Fetcher) *Service {
	return NewService(Config{
		AuthEndpoint: endpoint,
		Fetcher:      fetcher,
		Telemetry:    &identity.Collector{DeviceID: "device_1", GOOS: "darwin", GOARCH: "arm64"},
	})
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
