package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ error           = (*TransportFailure)(nil)
	_ ConfigProvider  = (*CfgxConfigProvider)(nil)
	_ OptionsResolver = GoOptionsResolver{}
	_ RawConfigLoader = StaticRawConfigLoader{}
	_ RawConfigLoader = YAMLFileLoader{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
