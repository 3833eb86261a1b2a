package query

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-launcher/providers/mojang"
	"github.com/goliatone/go-launcher/providers/visr"
)

type DistributionReader interface {
	Get(ctx context.Context) (json.RawMessage, error)
	GetLocalOnly(ctx context.Context) (json.RawMessage, error)
}

type MojangAuthenticator interface {
	Authenticate(
		ctx context.Context,
		username string,
		password string,
		clientToken string,
		requestUser bool,
		agent *mojang.Agent,
	) mojang.Response[*mojang.Session]
	Validate(ctx context.Context, accessToken string, clientToken string) mojang.Response[bool]
	Refresh(ctx context.Context, accessToken string, clientToken string, requestUser bool) mojang.Response[*mojang.Session]
}

type StatusReader interface {
	Status(ctx context.Context) mojang.Response[[]mojang.ServiceStatus]
}

type VISRAuthenticator interface {
	Authenticate(ctx context.Context, credentials visr.Credentials) visr.Response[*visr.Account]
}

type GetDistributionQuery struct {
	reader DistributionReader
}

func NewGetDistributionQuery(reader DistributionReader) *GetDistributionQuery {
	return &GetDistributionQuery{reader: reader}
}

func (q *GetDistributionQuery) Query(ctx context.Context, _ GetDistributionMessage) (json.RawMessage, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: distribution reader is required")
	}
	return q.reader.Get(ctx)
}

type GetLocalDistributionQuery struct {
	reader DistributionReader
}

func NewGetLocalDistributionQuery(reader DistributionReader) *GetLocalDistributionQuery {
	return &GetLocalDistributionQuery{reader: reader}
}

func (q *GetLocalDistributionQuery) Query(ctx context.Context, _ GetLocalDistributionMessage) (json.RawMessage, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: distribution reader is required")
	}
	return q.reader.GetLocalOnly(ctx)
}

// AuthenticateMojangQuery returns the provider envelope as is. The query error
// is reserved for wiring and validation faults.
type AuthenticateMojangQuery struct {
	client MojangAuthenticator
}

func NewAuthenticateMojangQuery(client MojangAuthenticator) *AuthenticateMojangQuery {
	return &AuthenticateMojangQuery{client: client}
}

func (q *AuthenticateMojangQuery) Query(
	ctx context.Context,
	msg AuthenticateMojangMessage,
) (mojang.Response[*mojang.Session], error) {
	if q == nil || q.client == nil {
		return mojang.Response[*mojang.Session]{}, queryDependencyError("query: mojang client is required")
	}
	if err := msg.Validate(); err != nil {
		return mojang.Response[*mojang.Session]{}, err
	}
	return q.client.Authenticate(ctx, msg.Username, msg.Password, msg.ClientToken, msg.RequestUser, msg.Agent), nil
}

type ValidateMojangQuery struct {
	client MojangAuthenticator
}

func NewValidateMojangQuery(client MojangAuthenticator) *ValidateMojangQuery {
	return &ValidateMojangQuery{client: client}
}

func (q *ValidateMojangQuery) Query(ctx context.Context, msg ValidateMojangMessage) (mojang.Response[bool], error) {
	if q == nil || q.client == nil {
		return mojang.Response[bool]{}, queryDependencyError("query: mojang client is required")
	}
	if err := msg.Validate(); err != nil {
		return mojang.Response[bool]{}, err
	}
	return q.client.Validate(ctx, msg.AccessToken, msg.ClientToken), nil
}

type RefreshMojangQuery struct {
	client MojangAuthenticator
}

func NewRefreshMojangQuery(client MojangAuthenticator) *RefreshMojangQuery {
	return &RefreshMojangQuery{client: client}
}

func (q *RefreshMojangQuery) Query(
	ctx context.Context,
	msg RefreshMojangMessage,
) (mojang.Response[*mojang.Session], error) {
	if q == nil || q.client == nil {
		return mojang.Response[*mojang.Session]{}, queryDependencyError("query: mojang client is required")
	}
	if err := msg.Validate(); err != nil {
		return mojang.Response[*mojang.Session]{}, err
	}
	return q.client.Refresh(ctx, msg.AccessToken, msg.ClientToken, msg.RequestUser), nil
}

type AuthenticateVISRQuery struct {
	service VISRAuthenticator
}

func NewAuthenticateVISRQuery(service VISRAuthenticator) *AuthenticateVISRQuery {
	return &AuthenticateVISRQuery{service: service}
}

func (q *AuthenticateVISRQuery) Query(
	ctx context.Context,
	msg AuthenticateVISRMessage,
) (visr.Response[*visr.Account], error) {
	if q == nil || q.service == nil {
		return visr.Response[*visr.Account]{}, queryDependencyError("query: visr service is required")
	}
	if err := msg.Validate(); err != nil {
		return visr.Response[*visr.Account]{}, err
	}
	return q.service.Authenticate(ctx, visr.Credentials{Username: msg.Username, Password: msg.Password}), nil
}

type ServiceStatusQuery struct {
	reader StatusReader
}

func NewServiceStatusQuery(reader StatusReader) *ServiceStatusQuery {
	return &ServiceStatusQuery{reader: reader}
}

func (q *ServiceStatusQuery) Query(
	ctx context.Context,
	_ ServiceStatusMessage,
) (mojang.Response[[]mojang.ServiceStatus], error) {
	if q == nil || q.reader == nil {
		return mojang.Response[[]mojang.ServiceStatus]{}, queryDependencyError("query: status reader is required")
	}
	return q.reader.Status(ctx), nil
}
