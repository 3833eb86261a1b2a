package distribution

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-launcher/core"
	"github.com/goliatone/go-launcher/identity"
	"golang.org/x/sync/singleflight"
)

const acquireFlightKey = "acquire"

type Config struct {
	LauncherDir string
	RemoteURL   string
	DevMode     bool
	AuthHeaders map[string]string
}

type Option func(*apiBuilder)

type apiBuilder struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	fetcher         core.Fetcher
	remote          RemoteSource
	store           *Store
	deviceID        string
	machineIDSource core.MachineIDSource
}

func WithLogger(logger core.Logger) Option {
	return func(b *apiBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *apiBuilder) {
		b.loggerProvider = provider
	}
}

// WithFetcher sets the transport used by the default remote source.
func WithFetcher(fetcher core.Fetcher) Option {
	return func(b *apiBuilder) {
		b.fetcher = fetcher
	}
}

// WithRemote replaces the remote source entirely.
func WithRemote(remote RemoteSource) Option {
	return func(b *apiBuilder) {
		b.remote = remote
	}
}

func WithStore(store *Store) Option {
	return func(b *apiBuilder) {
		b.store = store
	}
}

// WithDeviceID skips machine id resolution.
func WithDeviceID(deviceID string) Option {
	return func(b *apiBuilder) {
		b.deviceID = deviceID
	}
}

func WithMachineIDSource(source core.MachineIDSource) Option {
	return func(b *apiBuilder) {
		b.machineIDSource = source
	}
}

// API acquires the distribution manifest: remote first, local disk as
// fallback, dev file only in dev mode. It owns the in-memory copy.
type API struct {
	mu          sync.RWMutex
	devMode     bool
	current     json.RawMessage
	path        string
	devPath     string
	authHeaders map[string]string
	deviceID    string
	remote      RemoteSource
	store       *Store
	logger      core.Logger
	flight      singleflight.Group
}

func NewAPI(cfg Config, opts ...Option) (*API, error) {
	dir := strings.TrimSpace(cfg.LauncherDir)
	if dir == "" {
		return nil, core.BadInputError("distribution: launcher directory is required", nil)
	}
	builder := apiBuilder{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}
	logger := core.ResolveLogger("distribution", builder.loggerProvider, builder.logger)

	deviceID := strings.TrimSpace(builder.deviceID)
	if deviceID == "" {
		deviceID = identity.ResolveDeviceID(builder.machineIDSource, logger)
	}
	remote := builder.remote
	if remote == nil {
		if strings.TrimSpace(cfg.RemoteURL) == "" {
			return nil, core.BadInputError("distribution: remote url is required", nil)
		}
		remote = NewRemote(builder.fetcher, cfg.RemoteURL, cfg.AuthHeaders, deviceID, logger)
	}
	store := builder.store
	if store == nil {
		store = NewStore(logger)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, core.BadInputError("distribution: launcher directory is invalid", map[string]any{"launcher_dir": dir})
	}
	return &API{
		devMode:     cfg.DevMode,
		path:        filepath.Join(absDir, FileName),
		devPath:     filepath.Join(absDir, DevFileName),
		authHeaders: cloneHeaders(cfg.AuthHeaders),
		deviceID:    deviceID,
		remote:      remote,
		store:       store,
		logger:      logger,
	}, nil
}

// Get returns the cached manifest, acquiring it on first use. Failing to
// load from both remote and disk is fatal.
func (a *API) Get(ctx context.Context) (json.RawMessage, error) {
	if doc := a.cached(); doc != nil {
		return doc, nil
	}
	doc, err := a.acquireShared(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, core.DistributionUnavailableError(a.Path(), a.DevPath())
	}
	a.replace(doc)
	return cloneDoc(doc), nil
}

// GetLocalOnly is Get without the remote step. The file consulted follows
// the current dev mode flag.
func (a *API) GetLocalOnly(ctx context.Context) (json.RawMessage, error) {
	if doc := a.cached(); doc != nil {
		return doc, nil
	}
	doc, err := a.pullLocal()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, core.DistributionUnavailableError(a.localPath())
	}
	a.replace(doc)
	return cloneDoc(doc), nil
}

// RefreshOrFallback always attempts a fresh acquisition. On failure it keeps
// and returns the previous manifest, which is nil if none was ever loaded.
func (a *API) RefreshOrFallback(ctx context.Context) json.RawMessage {
	doc, err := a.acquireShared(ctx)
	if err != nil {
		a.logger.Warn("distribution refresh hit an i/o fault", "error", err.Error())
	}
	if doc == nil {
		a.logger.Warn("failed to refresh distribution, falling back to current load (if exists)")
		return a.cached()
	}
	a.replace(doc)
	return cloneDoc(doc)
}

// SetDevMode switches the file future acquisitions consult. It does not
// reload.
func (a *API) SetDevMode(dev bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.devMode = dev
}

func (a *API) DevMode() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.devMode
}

func (a *API) AuthHeaders() map[string]string {
	return cloneHeaders(a.authHeaders)
}

func (a *API) DeviceID() string {
	return a.deviceID
}

func (a *API) Path() string {
	return a.path
}

func (a *API) DevPath() string {
	return a.devPath
}

// acquireShared collapses concurrent acquisitions into one. The shared pull
// ignores cancellation of whichever caller started it.
func (a *API) acquireShared(ctx context.Context) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	flightCtx := context.WithoutCancel(ctx)
	value, err, _ := a.flight.Do(acquireFlightKey, func() (any, error) {
		return a.acquire(flightCtx)
	})
	doc, _ := value.(json.RawMessage)
	return doc, err
}

func (a *API) acquire(ctx context.Context) (json.RawMessage, error) {
	if a.DevMode() {
		return a.store.Read(a.devPath)
	}

	res := a.remote.Pull(ctx)
	if res.OK() && len(res.Data) > 0 && !isNullDocument(res.Data) {
		doc := cloneDoc(res.Data)
		if err := a.store.Write(a.path, doc); err != nil {
			a.logger.Error("failed to persist distribution", "path", a.path, "error", err.Error())
		}
		return doc, nil
	}
	return a.store.Read(a.path)
}

func (a *API) pullLocal() (json.RawMessage, error) {
	return a.store.Read(a.localPath())
}

func (a *API) localPath() string {
	if a.DevMode() {
		return a.devPath
	}
	return a.path
}

func (a *API) cached() json.RawMessage {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return cloneDoc(a.current)
}

func (a *API) replace(doc json.RawMessage) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = cloneDoc(doc)
}

func cloneDoc(doc json.RawMessage) json.RawMessage {
	if doc == nil {
		return nil
	}
	return json.RawMessage(bytes.Clone(doc))
}
