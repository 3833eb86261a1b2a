package command

import "strings"

const (
	TypeRefreshDistribution = "launcher.command.distribution.refresh"
	TypeSetDevMode          = "launcher.command.distribution.dev_mode.set"
	TypeInvalidateSession   = "launcher.command.auth.mojang.invalidate"
)

type RefreshDistributionMessage struct{}

func (RefreshDistributionMessage) Type() string { return TypeRefreshDistribution }

func (RefreshDistributionMessage) Validate() error { return nil }

type SetDevModeMessage struct {
	Enabled bool
}

func (SetDevModeMessage) Type() string { return TypeSetDevMode }

func (SetDevModeMessage) Validate() error { return nil }

type InvalidateSessionMessage struct {
	AccessToken string
	ClientToken string
}

func (InvalidateSessionMessage) Type() string { return TypeInvalidateSession }

func (m InvalidateSessionMessage) Validate() error {
	if strings.TrimSpace(m.AccessToken) == "" {
		return commandValidationError("access_token", "access token is required")
	}
	if strings.TrimSpace(m.ClientToken) == "" {
		return commandValidationError("client_token", "client token is required")
	}
	return nil
}
