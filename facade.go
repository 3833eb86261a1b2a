package launcher

import (
	"context"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	launchercommand "github.com/goliatone/go-launcher/command"
	"github.com/goliatone/go-launcher/core"
	"github.com/goliatone/go-launcher/distribution"
	"github.com/goliatone/go-launcher/identity"
	"github.com/goliatone/go-launcher/providers/mojang"
	"github.com/goliatone/go-launcher/providers/visr"
	launcherquery "github.com/goliatone/go-launcher/query"
	"github.com/goliatone/go-launcher/transport"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

type Commands struct {
	RefreshDistribution *launchercommand.RefreshDistributionCommand
	SetDevMode          *launchercommand.SetDevModeCommand
	InvalidateSession   *launchercommand.InvalidateSessionCommand
}

type Queries struct {
	GetDistribution      *launcherquery.GetDistributionQuery
	GetLocalDistribution *launcherquery.GetLocalDistributionQuery
	AuthenticateMojang   *launcherquery.AuthenticateMojangQuery
	ValidateMojang       *launcherquery.ValidateMojangQuery
	RefreshMojang        *launcherquery.RefreshMojangQuery
	AuthenticateVISR     *launcherquery.AuthenticateVISRQuery
	ServiceStatus        *launcherquery.ServiceStatusQuery
}

type Option func(*options)

type options struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	httpDoer        core.HTTPDoer
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	machineIDSource core.MachineIDSource
	statusCache     repositorycache.CacheService
	devMode         *bool
}

func WithLogger(logger core.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(o *options) {
		o.loggerProvider = provider
	}
}

// WithHTTPClient replaces the HTTP client shared by every remote call.
func WithHTTPClient(doer core.HTTPDoer) Option {
	return func(o *options) {
		o.httpDoer = doer
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(o *options) {
		o.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(o *options) {
		o.optionsResolver = resolver
	}
}

func WithMachineIDSource(source core.MachineIDSource) Option {
	return func(o *options) {
		o.machineIDSource = source
	}
}

// WithDevMode forces the dev mode flag after every config layer is applied.
func WithDevMode(enabled bool) Option {
	return func(o *options) {
		o.devMode = &enabled
	}
}

// WithStatusCache enables caching of the service status summary.
func WithStatusCache(cache repositorycache.CacheService) Option {
	return func(o *options) {
		o.statusCache = cache
	}
}

// Launcher composes the distribution API and the auth providers behind one
// resolved configuration.
type Launcher struct {
	config       core.Config
	deviceID     string
	logger       core.Logger
	distribution *distribution.API
	mojang       *mojang.Client
	visr         *visr.Service
	commands     Commands
	queries      Queries
}

// New resolves configuration as defaults < config provider < runtime and
// wires every component. The device identity is resolved once here.
func New(ctx context.Context, runtime core.Config, opts ...Option) (*Launcher, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := options{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	logger := core.ResolveLogger("launcher", cfg.loggerProvider, cfg.logger)
	resolved, err := resolveConfig(ctx, cfg, runtime)
	if err != nil {
		logger.Error("launcher configuration rejected", "error", err.Error())
		return nil, err
	}

	deviceID := identity.ResolveDeviceID(cfg.machineIDSource, core.ResolveLogger("identity", cfg.loggerProvider, cfg.logger))
	fetcher := newFetcher(resolved, cfg.httpDoer)

	distributionAPI, err := distribution.NewAPI(distribution.Config{
		LauncherDir: resolved.LauncherDir,
		RemoteURL:   resolved.RemoteURL,
		DevMode:     resolved.DevMode,
		AuthHeaders: resolved.AuthHeaders,
	},
		distribution.WithFetcher(fetcher),
		distribution.WithDeviceID(deviceID),
		distribution.WithLogger(cfg.logger),
		distribution.WithLoggerProvider(cfg.loggerProvider),
	)
	if err != nil {
		return nil, err
	}

	telemetry := identity.NewCollector(deviceID, core.ResolveLogger("identity", cfg.loggerProvider, cfg.logger))
	mojangClient := mojang.NewClient(mojang.Config{
		AuthEndpoint:   resolved.Mojang.AuthEndpoint,
		StatusEndpoint: resolved.Mojang.StatusEndpoint,
		StatusTimeout:  resolved.StatusTimeout(),
		Fetcher:        fetcher,
		Telemetry:      telemetry,
		StatusCache:    cfg.statusCache,
		Logger:         core.ResolveLogger("mojang", cfg.loggerProvider, cfg.logger),
	})
	visrService := visr.NewService(visr.Config{
		AuthEndpoint: resolved.VISR.AuthEndpoint,
		Fetcher:      fetcher,
		Telemetry:    telemetry,
		Logger:       core.ResolveLogger("visr", cfg.loggerProvider, cfg.logger),
	})

	l := &Launcher{
		config:       resolved,
		deviceID:     deviceID,
		logger:       logger,
		distribution: distributionAPI,
		mojang:       mojangClient,
		visr:         visrService,
	}
	l.commands = Commands{
		RefreshDistribution: launchercommand.NewRefreshDistributionCommand(distributionAPI),
		SetDevMode:          launchercommand.NewSetDevModeCommand(distributionAPI),
		InvalidateSession:   launchercommand.NewInvalidateSessionCommand(mojangClient),
	}
	l.queries = Queries{
		GetDistribution:      launcherquery.NewGetDistributionQuery(distributionAPI),
		GetLocalDistribution: launcherquery.NewGetLocalDistributionQuery(distributionAPI),
		AuthenticateMojang:   launcherquery.NewAuthenticateMojangQuery(mojangClient),
		ValidateMojang:       launcherquery.NewValidateMojangQuery(mojangClient),
		RefreshMojang:        launcherquery.NewRefreshMojangQuery(mojangClient),
		AuthenticateVISR:     launcherquery.NewAuthenticateVISRQuery(visrService),
		ServiceStatus:        launcherquery.NewServiceStatusQuery(mojangClient),
	}
	logger.Debug("launcher initialized", "launcher_dir", resolved.LauncherDir, "dev_mode", resolved.DevMode)
	return l, nil
}

func (l *Launcher) Commands() Commands {
	if l == nil {
		return Commands{}
	}
	return l.commands
}

func (l *Launcher) Queries() Queries {
	if l == nil {
		return Queries{}
	}
	return l.queries
}

// Config returns the resolved configuration.
func (l *Launcher) Config() core.Config {
	if l == nil {
		return core.Config{}
	}
	return l.config
}

func (l *Launcher) DeviceID() string {
	if l == nil {
		return ""
	}
	return l.deviceID
}

func (l *Launcher) Distribution() *distribution.API {
	if l == nil {
		return nil
	}
	return l.distribution
}

func (l *Launcher) Mojang() *mojang.Client {
	if l == nil {
		return nil
	}
	return l.mojang
}

func (l *Launcher) VISR() *visr.Service {
	if l == nil {
		return nil
	}
	return l.visr
}

func resolveConfig(ctx context.Context, cfg options, runtime core.Config) (core.Config, error) {
	defaults := core.DefaultConfig()
	loaded := defaults
	if cfg.configProvider != nil {
		var err error
		loaded, err = cfg.configProvider.Load(ctx, defaults)
		if err != nil {
			return core.Config{}, configError(err, "launcher: load configuration")
		}
	}
	resolver := cfg.optionsResolver
	if resolver == nil {
		resolver = core.GoOptionsResolver{}
	}
	resolved, err := resolver.Resolve(defaults, loaded, runtime)
	if err != nil {
		return core.Config{}, configError(err, "launcher: resolve configuration")
	}
	if cfg.devMode != nil {
		resolved.DevMode = *cfg.devMode
	}
	return resolved, nil
}

func configError(err error, message string) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, message).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.LauncherErrorBadInput)
}

func newFetcher(cfg core.Config, doer core.HTTPDoer) *transport.Client {
	if doer == nil {
		doer = &http.Client{Timeout: cfg.HTTPTimeout()}
	}
	client := transport.NewClient(doer)
	if cfg.HTTP.MaxResponseBytes > 0 {
		client.MaxResponseBodyBytes = cfg.HTTP.MaxResponseBytes
	}
	return client
}
