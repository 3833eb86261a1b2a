package query

import (
	"strings"

	"github.com/goliatone/go-launcher/providers/mojang"
)

const (
	TypeGetDistribution      = "launcher.query.distribution.get"
	TypeGetLocalDistribution = "launcher.query.distribution.get_local"
	TypeAuthenticateMojang   = "launcher.query.auth.mojang.authenticate"
	TypeValidateMojang       = "launcher.query.auth.mojang.validate"
	TypeRefreshMojang        = "launcher.query.auth.mojang.refresh"
	TypeAuthenticateVISR     = "launcher.query.auth.visr.authenticate"
	TypeServiceStatus        = "launcher.query.status.get"
)

type GetDistributionMessage struct{}

func (GetDistributionMessage) Type() string { return TypeGetDistribution }

func (GetDistributionMessage) Validate() error { return nil }

type GetLocalDistributionMessage struct{}

func (GetLocalDistributionMessage) Type() string { return TypeGetLocalDistribution }

func (GetLocalDistributionMessage) Validate() error { return nil }

type AuthenticateMojangMessage struct {
	Username    string
	Password    string
	ClientToken string
	RequestUser bool
	Agent       *mojang.Agent
}

func (AuthenticateMojangMessage) Type() string { return TypeAuthenticateMojang }

func (m AuthenticateMojangMessage) Validate() error {
	if strings.TrimSpace(m.Username) == "" {
		return queryValidationError("username", "username is required")
	}
	if m.Password == "" {
		return queryValidationError("password", "password is required")
	}
	return nil
}

type ValidateMojangMessage struct {
	AccessToken string
	ClientToken string
}

func (ValidateMojangMessage) Type() string { return TypeValidateMojang }

func (m ValidateMojangMessage) Validate() error {
	return validateTokens(m.AccessToken, m.ClientToken)
}

type RefreshMojangMessage struct {
	AccessToken string
	ClientToken string
	RequestUser bool
}

func (RefreshMojangMessage) Type() string { return TypeRefreshMojang }

func (m RefreshMojangMessage) Validate() error {
	return validateTokens(m.AccessToken, m.ClientToken)
}

type AuthenticateVISRMessage struct {
	Username string
	Password string
}

func (AuthenticateVISRMessage) Type() string { return TypeAuthenticateVISR }

func (m AuthenticateVISRMessage) Validate() error {
	if strings.TrimSpace(m.Username) == "" {
		return queryValidationError("username", "username is required")
	}
	if m.Password == "" {
		return queryValidationError("password", "password is required")
	}
	return nil
}

type ServiceStatusMessage struct{}

func (ServiceStatusMessage) Type() string { return TypeServiceStatus }

func (ServiceStatusMessage) Validate() error { return nil }

func validateTokens(accessToken string, clientToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return queryValidationError("access_token", "access token is required")
	}
	if strings.TrimSpace(clientToken) == "" {
		return queryValidationError("client_token", "client token is required")
	}
	return nil
}
