package query

import (
	"encoding/json"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-launcher/providers/mojang"
	"github.com/goliatone/go-launcher/providers/visr"
)

var (
	_ gocmd.Querier[GetDistributionMessage, json.RawMessage]                       = (*GetDistributionQuery)(nil)
	_ gocmd.Querier[GetLocalDistributionMessage, json.RawMessage]                  = (*GetLocalDistributionQuery)(nil)
	_ gocmd.Querier[AuthenticateMojangMessage, mojang.Response[*mojang.Session]]   = (*AuthenticateMojangQuery)(nil)
	_ gocmd.Querier[ValidateMojangMessage, mojang.Response[bool]]                  = (*ValidateMojangQuery)(nil)
	_ gocmd.Querier[RefreshMojangMessage, mojang.Response[*mojang.Session]]        = (*RefreshMojangQuery)(nil)
	_ gocmd.Querier[AuthenticateVISRMessage, visr.Response[*visr.Account]]         = (*AuthenticateVISRQuery)(nil)
	_ gocmd.Querier[ServiceStatusMessage, mojang.Response[[]mojang.ServiceStatus]] = (*ServiceStatusQuery)(nil)
)
