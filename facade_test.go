package launcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	launchercommand "github.com/goliatone/go-launcher/command"
	"github.com/goliatone/go-launcher/core"
	"github.com/goliatone/go-launcher/identity"
	"github.com/goliatone/go-launcher/providers/mojang"
	launcherquery "github.com/goliatone/go-launcher/query"
)

func TestNew_WiresCommandsAndQueries(t *testing.T) {
	backend := newLauncherBackend(t)
	l := newTestLauncher(t, backend, t.TempDir())

	commands := l.Commands()
	if commands.RefreshDistribution == nil || commands.SetDevMode == nil || commands.InvalidateSession == nil {
		t.Fatalf("expected command handlers to be wired")
	}
	queries := l.Queries()
	if queries.GetDistribution == nil || queries.GetLocalDistribution == nil || queries.AuthenticateMojang == nil ||
		queries.ValidateMojang == nil || queries.RefreshMojang == nil || queries.AuthenticateVISR == nil ||
		queries.ServiceStatus == nil {
		t.Fatalf("expected query handlers to be wired")
	}
	if l.Distribution() == nil || l.Mojang() == nil || l.VISR() == nil {
		t.Fatalf("expected components to be exposed")
	}
}

func TestLauncher_GetDistributionSendsResolvedDeviceID(t *testing.T) {
	backend := newLauncherBackend(t)
	dir := t.TempDir()
	l := newTestLauncher(t, backend, dir)

	expectedDevice := identity.ResolveDeviceID(testMachineID, nil)
	if l.DeviceID() != expectedDevice {
		t.Fatalf("expected device id %q, got %q", expectedDevice, l.DeviceID())
	}

	doc, err := l.Queries().GetDistribution.Query(context.Background(), launcherquery.GetDistributionMessage{})
	if err != nil {
		t.Fatalf("query distribution: %v", err)
	}
	if string(doc) != backend.distribution {
		t.Fatalf("unexpected distribution %s", doc)
	}
	if got := backend.lastDevice(); got != expectedDevice {
		t.Fatalf("expected device header %q, got %q", expectedDevice, got)
	}
	if _, err := os.Stat(filepath.Join(dir, "distribution.json")); err != nil {
		t.Fatalf("expected distribution to be persisted: %v", err)
	}
}

func TestLauncher_DevModeCommandSwitchesLocalFile(t *testing.T) {
	backend := newLauncherBackend(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "distribution_dev.json"), []byte(`{"version":"dev"}`), 0o644); err != nil {
		t.Fatalf("seed dev file: %v", err)
	}
	l := newTestLauncher(t, backend, dir)

	if err := l.Commands().SetDevMode.Execute(context.Background(), launchercommand.SetDevModeMessage{Enabled: true}); err != nil {
		t.Fatalf("set dev mode: %v", err)
	}
	ctx := gocmd.ContextWithResult(context.Background(), gocmd.NewResult[json.RawMessage]())
	if err := l.Commands().RefreshDistribution.Execute(ctx, launchercommand.RefreshDistributionMessage{}); err != nil {
		t.Fatalf("refresh distribution: %v", err)
	}
	stored, ok := gocmd.ResultFromContext[json.RawMessage](ctx).Load()
	if !ok || string(stored) != `{"version":"dev"}` {
		t.Fatalf("expected dev document in result, got %s", stored)
	}
	if backend.distributionHits() != 0 {
		t.Fatalf("dev mode must not reach the remote server")
	}
}

func TestLauncher_StatusAndSessionFlows(t *testing.T) {
	backend := newLauncherBackend(t)
	l := newTestLauncher(t, backend, t.TempDir())

	res, err := l.Queries().ServiceStatus.Query(context.Background(), launcherquery.ServiceStatusMessage{})
	if err != nil {
		t.Fatalf("query status: %v", err)
	}
	if !res.OK() {
		t.Fatalf("expected status success, got %v", res.Error)
	}
	for _, status := range res.Data {
		if status.Service == "vi-software-api" && status.Status != mojang.StatusGreen {
			t.Fatalf("expected api to be green, got %s", status.Status)
		}
	}

	valid, err := l.Queries().ValidateMojang.Query(context.Background(), launcherquery.ValidateMojangMessage{
		AccessToken: "access_1",
		ClientToken: "client_1",
	})
	if err != nil {
		t.Fatalf("query validate: %v", err)
	}
	if !valid.OK() || !valid.Data {
		t.Fatalf("expected token to validate, got %#v", valid)
	}

	if err := l.Commands().InvalidateSession.Execute(context.Background(), launchercommand.InvalidateSessionMessage{
		AccessToken: "access_1",
		ClientToken: "client_1",
	}); err != nil {
		t.Fatalf("invalidate session: %v", err)
	}
}

func TestNew_LayersConfigProviderAndRuntime(t *testing.T) {
	backend := newLauncherBackend(t)
	dir := t.TempDir()
	provider := core.NewCfgxConfigProvider(core.StaticRawConfigLoader{Values: map[string]any{
		"launcher_dir": dir,
		"remote_url":   "https://cdn.example.com/distribution.json",
		"dev_mode":     true,
	}})

	l, err := New(context.Background(), Config{RemoteURL: backend.server.URL + "/distribution.json"},
		WithConfigProvider(provider),
		WithHTTPClient(backend.server.Client()),
		WithMachineIDSource(testMachineID),
	)
	if err != nil {
		t.Fatalf("new launcher: %v", err)
	}
	cfg := l.Config()
	if cfg.LauncherDir != dir {
		t.Fatalf("expected launcher dir from provider, got %q", cfg.LauncherDir)
	}
	if cfg.RemoteURL != backend.server.URL+"/distribution.json" {
		t.Fatalf("expected runtime remote url to win, got %q", cfg.RemoteURL)
	}
	if !cfg.DevMode || !l.Distribution().DevMode() {
		t.Fatalf("expected dev mode from provider")
	}
	if cfg.Mojang.AuthEndpoint != core.DefaultMojangAuthEndpoint {
		t.Fatalf("expected default auth endpoint, got %q", cfg.Mojang.AuthEndpoint)
	}
}

func TestNew_WithDevModeOverridesLoadedValue(t *testing.T) {
	backend := newLauncherBackend(t)
	provider := core.NewCfgxConfigProvider(core.StaticRawConfigLoader{Values: map[string]any{
		"launcher_dir": t.TempDir(),
		"remote_url":   backend.server.URL + "/distribution.json",
		"dev_mode":     true,
	}})

	l, err := New(context.Background(), Config{DevMode: false},
		WithConfigProvider(provider),
		WithDevMode(false),
		WithHTTPClient(backend.server.Client()),
		WithMachineIDSource(testMachineID),
	)
	if err != nil {
		t.Fatalf("new launcher: %v", err)
	}
	if l.Config().DevMode || l.Distribution().DevMode() {
		t.Fatalf("expected explicit dev mode override to clear the loaded value")
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	l, err := New(context.Background(), Config{RemoteURL: "https://cdn.example.com/distribution.json"},
		WithMachineIDSource(testMachineID))
	if err == nil {
		t.Fatalf("expected missing launcher dir to be rejected")
	}
	if l != nil {
		t.Fatalf("expected nil launcher on error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != core.LauncherErrorBadInput {
		t.Fatalf("expected bad input error, got %v", err)
	}
}

func TestLauncher_NilAccessors(t *testing.T) {
	var l *Launcher
	if l.Distribution() != nil || l.Mojang() != nil || l.VISR() != nil || l.DeviceID() != "" {
		t.Fatalf("expected nil launcher accessors to be safe")
	}
	if l.Commands().RefreshDistribution != nil || l.Queries().GetDistribution != nil {
		t.Fatalf("expected empty handler sets")
	}
}

func testMachineID() (string, error) {
	return "machine-1", nil
}

func newTestLauncher(t *testing.T, backend *launcherBackend, dir string) *Launcher {
	t.Helper()
	l, err := New(context.Background(), Config{
		LauncherDir: dir,
		RemoteURL:   backend.server.URL + "/distribution.json",
		Mojang: MojangConfig{
			AuthEndpoint:   backend.server.URL + "/auth/",
			StatusEndpoint: backend.server.URL + "/summary.json",
		},
		VISR: VISRConfig{AuthEndpoint: backend.server.URL + "/visr/login"},
	},
		WithHTTPClient(backend.server.Client()),
		WithMachineIDSource(testMachineID),
	)
	if err != nil {
		t.Fatalf("new launcher: %v", err)
	}
	return l
}

type launcherBackend struct {
	server       *httptest.Server
	distribution string

	mu          sync.Mutex
	device      string
	pulledCount int
}

func newLauncherBackend(t *testing.T) *launcherBackend {
	t.Helper()
	backend := &launcherBackend{distribution: `{"version":"1.0.0","servers":[]}`}
	backend.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/distribution.json":
			backend.mu.Lock()
			backend.device = r.Header.Get("device")
			backend.pulledCount++
			backend.mu.Unlock()
			_, _ = w.Write([]byte(backend.distribution))
		case "/summary.json":
			_, _ = w.Write([]byte(`[{"slug":"vi-software-api","status":"up"}]`))
		case "/auth/validate", "/auth/invalidate":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(backend.server.Close)
	return backend
}

func (b *launcherBackend) lastDevice() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.device
}

func (b *launcherBackend) distributionHits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pulledCount
}
