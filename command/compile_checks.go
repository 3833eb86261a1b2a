package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[RefreshDistributionMessage] = (*RefreshDistributionCommand)(nil)
	_ gocmd.Commander[SetDevModeMessage]          = (*SetDevModeCommand)(nil)
	_ gocmd.Commander[InvalidateSessionMessage]   = (*InvalidateSessionCommand)(nil)
)
