package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
	"gopkg.in/yaml.v3"
)

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type StaticRawConfigLoader struct {
	Values map[string]any
}

func (l StaticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

// YAMLFileLoader reads raw config values from a YAML (or JSON) file. A missing
// file yields an empty value set.
type YAMLFileLoader struct {
	Path string
}

func (l YAMLFileLoader) LoadRaw(context.Context) (map[string]any, error) {
	path := strings.TrimSpace(l.Path)
	if path == "" {
		return map[string]any{}, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("core: read config file %q: %w", path, err)
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("core: decode config file %q: %w", path, err)
	}
	return values, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

// Load builds a Config from raw values. Validation is deferred to the
// options resolver since runtime values may still fill required fields.
func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = StaticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw, cfgx.WithDefaults(defaults))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

// configToLayerMap projects a Config into an options layer. Only non-zero
// values are emitted unless includeZero is set, so a later layer never
// clears an earlier one by omission.
func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	setString := func(target map[string]any, key string, value string) {
		if includeZero || strings.TrimSpace(value) != "" {
			target[key] = strings.TrimSpace(value)
		}
	}
	setInt := func(target map[string]any, key string, value int64) {
		if includeZero || value != 0 {
			target[key] = value
		}
	}

	setString(layer, "launcher_dir", cfg.LauncherDir)
	setString(layer, "remote_url", cfg.RemoteURL)
	if includeZero || cfg.DevMode {
		layer["dev_mode"] = cfg.DevMode
	}
	if includeZero || len(cfg.AuthHeaders) > 0 {
		headers := make(map[string]any, len(cfg.AuthHeaders))
		for key, value := range cfg.AuthHeaders {
			headers[key] = value
		}
		layer["auth_headers"] = headers
	}

	mojang := map[string]any{}
	setString(mojang, "auth_endpoint", cfg.Mojang.AuthEndpoint)
	setString(mojang, "status_endpoint", cfg.Mojang.StatusEndpoint)
	setInt(mojang, "status_timeout_ms", int64(cfg.Mojang.StatusTimeoutMS))
	if len(mojang) > 0 {
		layer["mojang"] = mojang
	}

	visr := map[string]any{}
	setString(visr, "auth_endpoint", cfg.VISR.AuthEndpoint)
	if len(visr) > 0 {
		layer["visr"] = visr
	}

	httpLayer := map[string]any{}
	setInt(httpLayer, "timeout_ms", int64(cfg.HTTP.TimeoutMS))
	setInt(httpLayer, "max_response_bytes", cfg.HTTP.MaxResponseBytes)
	if len(httpLayer) > 0 {
		layer["http"] = httpLayer
	}
	return layer
}

// ResolveLogger returns a named, never-nil logger with precedence
// provider > logger > nop. A bare logger is returned as is.
func ResolveLogger(name string, provider LoggerProvider, logger Logger) Logger {
	resolvedProvider, resolved := glog.Resolve(name, provider, logger)
	resolved = glog.Ensure(resolved)
	if provider != nil && resolvedProvider != nil {
		if named := resolvedProvider.GetLogger(name); named != nil {
			resolved = glog.Ensure(named)
		}
	}
	return resolved
}
