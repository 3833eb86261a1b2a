package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDistributionCommand_PrintsRemoteManifest(t *testing.T) {
	server := newCLIBackend(t)
	dir := t.TempDir()

	out, err := runCLI(t, "--launcher-dir", dir, "--remote-url", server.URL+"/distribution.json", "distribution")
	if err != nil {
		t.Fatalf("run distribution: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if doc["version"] != "1.0.0" {
		t.Fatalf("unexpected manifest %#v", doc)
	}
}

func TestDistributionCommand_LocalDevFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "distribution_dev.json"), []byte(`{"version":"dev"}`), 0o644); err != nil {
		t.Fatalf("seed dev file: %v", err)
	}

	out, err := runCLI(t, "--launcher-dir", dir, "--remote-url", "https://cdn.invalid/distribution.json", "distribution", "--local", "--dev")
	if err != nil {
		t.Fatalf("run distribution: %v", err)
	}
	if !strings.Contains(out, `"version": "dev"`) {
		t.Fatalf("expected dev manifest, got %q", out)
	}
}

func TestValidateCommand_UsesConfigFile(t *testing.T) {
	server := newCLIBackend(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "launcher.yaml")
	config := "launcher_dir: " + dir + "\n" +
		"remote_url: " + server.URL + "/distribution.json\n" +
		"mojang:\n" +
		"  auth_endpoint: " + server.URL + "/auth/\n"
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "validate", "--access-token", "access_1", "--client-token", "client_1")
	if err != nil {
		t.Fatalf("run validate: %v", err)
	}
	if !strings.Contains(out, `"valid": true`) {
		t.Fatalf("expected valid token, got %q", out)
	}
}

func TestValidateCommand_RequiresTokens(t *testing.T) {
	if _, err := runCLI(t, "--launcher-dir", t.TempDir(), "validate"); err == nil {
		t.Fatalf("expected missing token flags to fail")
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func newCLIBackend(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/distribution.json":
			_, _ = w.Write([]byte(`{"version":"1.0.0"}`))
		case "/auth/validate":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}
