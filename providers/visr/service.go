package visr

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-launcher/core"
	"github.com/goliatone/go-launcher/identity"
	"github.com/goliatone/go-launcher/transport"
)

const operationAuthenticate = "VISR Authenticate"

type Config struct {
	AuthEndpoint string
	Fetcher      core.Fetcher
	Telemetry    *identity.Collector
	Logger       core.Logger
}

// Service logs users in against the VISR account-linking API.
type Service struct {
	endpoint  string
	fetcher   core.Fetcher
	telemetry *identity.Collector
	logger    core.Logger
}

func NewService(cfg Config) *Service {
	endpoint := strings.TrimSpace(cfg.AuthEndpoint)
	if endpoint == "" {
		endpoint = core.DefaultVISRAuthEndpoint
	}
	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = transport.NewClient(nil)
	}
	logger := core.ResolveLogger("visr", nil, cfg.Logger)
	telemetry := cfg.Telemetry
	if telemetry == nil {
		telemetry = identity.NewCollector(identity.ResolveDeviceID(nil, logger), logger)
	}
	return &Service{
		endpoint:  endpoint,
		fetcher:   fetcher,
		telemetry: telemetry,
		logger:    logger,
	}
}

func (s *Service) Endpoint() string {
	return s.endpoint
}

// Authenticate sends the credentials together with a fresh device description.
func (s *Service) Authenticate(ctx context.Context, credentials Credentials) Response[*Account] {
	payload := AuthPayload{
		Username: credentials.Username,
		Password: credentials.Password,
		Device:   s.telemetry.Collect(ctx),
	}
	req, err := transport.PostJSON(operationAuthenticate, s.endpoint, payload, nil)
	if err != nil {
		return s.failure(err)
	}
	res, err := s.fetcher.Do(ctx, req)
	if err != nil {
		return s.failure(err)
	}
	transport.ExpectStatus(s.logger, operationAuthenticate, http.StatusOK, res.StatusCode)
	decoded, err := transport.DecodeJSON[authResponse](operationAuthenticate, res)
	if err != nil {
		return s.failure(err)
	}
	return Response[*Account]{Response: core.Success(decoded.account())}
}

func (s *Service) failure(err error) Response[*Account] {
	transport.LogFailure(s.logger, operationAuthenticate, err)
	failure := core.AsTransportFailure(err)
	detail := decodeErrorBody(failure)
	if detail != nil && failure.Cause == nil {
		annotated := *failure
		annotated.Cause = errors.New(strings.TrimSpace(detail.Error + ": " + detail.Message))
		failure = &annotated
	}
	classified := Classify(failure)
	return Response[*Account]{
		Response:   core.Failure[*Account](failure, nil),
		Classified: &classified,
		Detail:     detail,
	}
}
