package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultMojangAuthEndpoint   = "https://authserver.visoftware.dev/"
	DefaultMojangStatusEndpoint = "https://raw.githubusercontent.com/VI-Software/status/master/history/summary.json"
	DefaultVISRAuthEndpoint     = "https://api.visoftware.dev/services/visr/login"

	DefaultStatusTimeout       = 2500 * time.Millisecond
	DefaultHTTPTimeout         = 30 * time.Second
	DefaultMaxResponseBodySize = int64(10 << 20)
)

type MojangConfig struct {
	AuthEndpoint    string `koanf:"auth_endpoint" mapstructure:"auth_endpoint"`
	StatusEndpoint  string `koanf:"status_endpoint" mapstructure:"status_endpoint"`
	StatusTimeoutMS int    `koanf:"status_timeout_ms" mapstructure:"status_timeout_ms"`
}

type VISRConfig struct {
	AuthEndpoint string `koanf:"auth_endpoint" mapstructure:"auth_endpoint"`
}

type HTTPConfig struct {
	TimeoutMS        int   `koanf:"timeout_ms" mapstructure:"timeout_ms"`
	MaxResponseBytes int64 `koanf:"max_response_bytes" mapstructure:"max_response_bytes"`
}

// Config is the launcher configuration. As a runtime layer only non-zero
// values apply, so a false DevMode there never clears a loaded true; use
// launcher.WithDevMode to force the flag either way.
type Config struct {
	LauncherDir string            `koanf:"launcher_dir" mapstructure:"launcher_dir"`
	RemoteURL   string            `koanf:"remote_url" mapstructure:"remote_url"`
	DevMode     bool              `koanf:"dev_mode" mapstructure:"dev_mode"`
	AuthHeaders map[string]string `koanf:"auth_headers" mapstructure:"auth_headers"`
	Mojang      MojangConfig      `koanf:"mojang" mapstructure:"mojang"`
	VISR        VISRConfig        `koanf:"visr" mapstructure:"visr"`
	HTTP        HTTPConfig        `koanf:"http" mapstructure:"http"`
}

func DefaultConfig() Config {
	return Config{
		AuthHeaders: map[string]string{},
		Mojang: MojangConfig{
			AuthEndpoint:    DefaultMojangAuthEndpoint,
			StatusEndpoint:  DefaultMojangStatusEndpoint,
			StatusTimeoutMS: int(DefaultStatusTimeout / time.Millisecond),
		},
		VISR: VISRConfig{
			AuthEndpoint: DefaultVISRAuthEndpoint,
		},
		HTTP: HTTPConfig{
			TimeoutMS:        int(DefaultHTTPTimeout / time.Millisecond),
			MaxResponseBytes: DefaultMaxResponseBodySize,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.LauncherDir) == "" {
		return fmt.Errorf("core: launcher_dir is required")
	}
	if err := validateEndpoint("remote_url", c.RemoteURL); err != nil {
		return err
	}
	if err := validateEndpoint("mojang.auth_endpoint", c.Mojang.AuthEndpoint); err != nil {
		return err
	}
	if err := validateEndpoint("mojang.status_endpoint", c.Mojang.StatusEndpoint); err != nil {
		return err
	}
	if err := validateEndpoint("visr.auth_endpoint", c.VISR.AuthEndpoint); err != nil {
		return err
	}
	if c.Mojang.StatusTimeoutMS < 0 {
		return fmt.Errorf("core: mojang.status_timeout_ms must not be negative")
	}
	if c.HTTP.TimeoutMS < 0 {
		return fmt.Errorf("core: http.timeout_ms must not be negative")
	}
	if c.HTTP.MaxResponseBytes < 0 {
		return fmt.Errorf("core: http.max_response_bytes must not be negative")
	}
	return nil
}

func (c Config) StatusTimeout() time.Duration {
	return time.Duration(c.Mojang.StatusTimeoutMS) * time.Millisecond
}

func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutMS) * time.Millisecond
}

func validateEndpoint(field string, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("core: %s is required", field)
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("core: %s is invalid: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("core: %s must be an http(s) url", field)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return fmt.Errorf("core: %s must include a host", field)
	}
	return nil
}
