package launcher

import (
	"github.com/goliatone/go-launcher/core"
	"github.com/goliatone/go-launcher/providers/mojang"
	"github.com/goliatone/go-launcher/providers/visr"
)

type Config = core.Config

type MojangConfig = core.MojangConfig

type VISRConfig = core.VISRConfig

type HTTPConfig = core.HTTPConfig

type Response[T any] = core.Response[T]

type ResponseStatus = core.ResponseStatus

type AccountType = core.AccountType

type Session = mojang.Session

type ServiceStatus = mojang.ServiceStatus

type Account = visr.Account

const (
	ResponseStatusSuccess = core.ResponseStatusSuccess
	ResponseStatusError   = core.ResponseStatusError

	AccountTypeMojang    = core.AccountTypeMojang
	AccountTypeMicrosoft = core.AccountTypeMicrosoft
	AccountTypeVISR      = core.AccountTypeVISR
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}
