package mojang

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-launcher/core"
	"github.com/goliatone/go-launcher/identity"
	"github.com/goliatone/go-launcher/transport"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
)

const (
	operationAuthenticate = "Mojang Authenticate"
	operationValidate     = "Mojang Validate"
	operationInvalidate   = "Mojang Invalidate"
	operationRefresh      = "Mojang Refresh"
	operationStatus       = "Mojang Status"

	deviceInfoHeader = "Device-Info"
)

type Config struct {
	AuthEndpoint   string
	StatusEndpoint string
	StatusTimeout  time.Duration
	Fetcher        core.Fetcher
	Telemetry      *identity.Collector
	StatusCache    repositorycache.CacheService
	Logger         core.Logger
}

// Client talks to the legacy Yggdrasil-style auth server. Apart from the
// service status table it is stateless.
type Client struct {
	authEndpoint   string
	statusEndpoint string
	statusTimeout  time.Duration
	fetcher        core.Fetcher
	telemetry      *identity.Collector
	statusCache    repositorycache.CacheService
	logger         core.Logger

	mu       sync.Mutex
	statuses []ServiceStatus
}

func NewClient(cfg Config) *Client {
	authEndpoint := strings.TrimSpace(cfg.AuthEndpoint)
	if authEndpoint == "" {
		authEndpoint = core.DefaultMojangAuthEndpoint
	}
	statusEndpoint := strings.TrimSpace(cfg.StatusEndpoint)
	if statusEndpoint == "" {
		statusEndpoint = core.DefaultMojangStatusEndpoint
	}
	statusTimeout := cfg.StatusTimeout
	if statusTimeout <= 0 {
		statusTimeout = core.DefaultStatusTimeout
	}
	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = transport.NewClient(nil)
	}
	logger := core.ResolveLogger("mojang", nil, cfg.Logger)
	telemetry := cfg.Telemetry
	if telemetry == nil {
		telemetry = identity.NewCollector(identity.ResolveDeviceID(nil, logger), logger)
	}
	return &Client{
		authEndpoint:   authEndpoint,
		statusEndpoint: statusEndpoint,
		statusTimeout:  statusTimeout,
		fetcher:        fetcher,
		telemetry:      telemetry,
		statusCache:    cfg.StatusCache,
		logger:         logger,
		statuses:       DefaultStatuses(),
	}
}

// NewClientToken returns a fresh random client token.
func NewClientToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Authenticate exchanges credentials for a session. An empty clientToken lets
// the server pick one.
func (c *Client) Authenticate(
	ctx context.Context,
	username string,
	password string,
	clientToken string,
	requestUser bool,
	agent *Agent,
) Response[*Session] {
	payload := AuthPayload{
		Agent:       LauncherAgent,
		Username:    username,
		Password:    password,
		ClientToken: strings.TrimSpace(clientToken),
		RequestUser: requestUser,
	}
	if agent != nil {
		payload.Agent = *agent
	}

	headers := map[string]string{}
	deviceInfo, err := json.Marshal(c.telemetry.Collect(ctx).DeviceInfo())
	if err == nil {
		headers[deviceInfoHeader] = string(deviceInfo)
	}

	req, err := transport.PostJSON(operationAuthenticate, c.endpoint("authenticate"), payload, headers)
	if err != nil {
		return failure(c.logger, operationAuthenticate, err, nilSession)
	}
	res, err := c.fetcher.Do(ctx, req)
	if err != nil {
		return failure(c.logger, operationAuthenticate, err, nilSession)
	}
	transport.ExpectStatus(c.logger, operationAuthenticate, http.StatusOK, res.StatusCode)
	session, err := transport.DecodeJSON[Session](operationAuthenticate, res)
	if err != nil {
		return failure(c.logger, operationAuthenticate, err, nilSession)
	}
	return success(&session)
}

// Validate checks an access token. A 403 answer is the normal "token is no
// longer valid" outcome and yields a successful false.
func (c *Client) Validate(ctx context.Context, accessToken string, clientToken string) Response[bool] {
	req, err := transport.PostJSON(operationValidate, c.endpoint("validate"), tokenPayload{
		AccessToken: accessToken,
		ClientToken: clientToken,
	}, nil)
	if err != nil {
		return failure(c.logger, operationValidate, err, falseValue)
	}
	res, err := c.fetcher.Do(ctx, req)
	if err != nil {
		if rejected := core.AsTransportFailure(err); rejected.Kind == core.FailureProtocol && rejected.StatusCode == http.StatusForbidden {
			return success(false)
		}
		return failure(c.logger, operationValidate, err, falseValue)
	}
	transport.ExpectStatus(c.logger, operationValidate, http.StatusNoContent, res.StatusCode)
	return success(res.StatusCode == http.StatusNoContent)
}

func (c *Client) Invalidate(ctx context.Context, accessToken string, clientToken string) Response[struct{}] {
	req, err := transport.PostJSON(operationInvalidate, c.endpoint("invalidate"), tokenPayload{
		AccessToken: accessToken,
		ClientToken: clientToken,
	}, nil)
	if err != nil {
		return failure(c.logger, operationInvalidate, err, emptyValue)
	}
	res, err := c.fetcher.Do(ctx, req)
	if err != nil {
		return failure(c.logger, operationInvalidate, err, emptyValue)
	}
	transport.ExpectStatus(c.logger, operationInvalidate, http.StatusNoContent, res.StatusCode)
	return success(struct{}{})
}

// Refresh trades a recent access token for a new one without asking for
// credentials again.
func (c *Client) Refresh(ctx context.Context, accessToken string, clientToken string, requestUser bool) Response[*Session] {
	req, err := transport.PostJSON(operationRefresh, c.endpoint("refresh"), tokenPayload{
		AccessToken: accessToken,
		ClientToken: clientToken,
		RequestUser: &requestUser,
	}, nil)
	if err != nil {
		return failure(c.logger, operationRefresh, err, nilSession)
	}
	res, err := c.fetcher.Do(ctx, req)
	if err != nil {
		return failure(c.logger, operationRefresh, err, nilSession)
	}
	transport.ExpectStatus(c.logger, operationRefresh, http.StatusOK, res.StatusCode)
	session, err := transport.DecodeJSON[Session](operationRefresh, res)
	if err != nil {
		return failure(c.logger, operationRefresh, err, nilSession)
	}
	return success(&session)
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.authEndpoint, "/") + "/" + strings.TrimLeft(path, "/")
}

// failure logs err and wraps it into a classified error response.
func failure[T any](logger core.Logger, operation string, err error, fallback func() T) Response[T] {
	transport.LogFailure(logger, operation, err)
	transportFailure := core.AsTransportFailure(err)
	classified := Classify(transportFailure)
	return Response[T]{
		Response:   core.Failure[T](transportFailure, fallback),
		Classified: &classified,
	}
}

func success[T any](data T) Response[T] {
	return Response[T]{Response: core.Success(data)}
}

func nilSession() *Session { return nil }

func falseValue() bool { return false }

func emptyValue() struct{} { return struct{}{} }
