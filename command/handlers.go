package command

import (
	"context"
	"encoding/json"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-launcher/core"
	"github.com/goliatone/go-launcher/providers/mojang"
)

type DistributionService interface {
	RefreshOrFallback(ctx context.Context) json.RawMessage
	SetDevMode(enabled bool)
	Path() string
	DevPath() string
}

type SessionService interface {
	Invalidate(ctx context.Context, accessToken string, clientToken string) mojang.Response[struct{}]
}

// RefreshDistributionCommand re-acquires the manifest and stores the
// resulting document in the context result collector.
type RefreshDistributionCommand struct {
	service DistributionService
}

func NewRefreshDistributionCommand(service DistributionService) *RefreshDistributionCommand {
	return &RefreshDistributionCommand{service: service}
}

func (c *RefreshDistributionCommand) Execute(ctx context.Context, msg RefreshDistributionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: distribution service is required")
	}
	doc := c.service.RefreshOrFallback(ctx)
	if doc == nil {
		return core.DistributionUnavailableError(c.service.Path(), c.service.DevPath())
	}
	storeResult(ctx, doc)
	return nil
}

type SetDevModeCommand struct {
	service DistributionService
}

func NewSetDevModeCommand(service DistributionService) *SetDevModeCommand {
	return &SetDevModeCommand{service: service}
}

func (c *SetDevModeCommand) Execute(_ context.Context, msg SetDevModeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: distribution service is required")
	}
	c.service.SetDevMode(msg.Enabled)
	return nil
}

type InvalidateSessionCommand struct {
	service SessionService
}

func NewInvalidateSessionCommand(service SessionService) *InvalidateSessionCommand {
	return &InvalidateSessionCommand{service: service}
}

func (c *InvalidateSessionCommand) Execute(ctx context.Context, msg InvalidateSessionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: session service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	res := c.service.Invalidate(ctx, msg.AccessToken, msg.ClientToken)
	if !res.OK() {
		return commandProviderError(res.Error, string(res.ErrorCode()))
	}
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
