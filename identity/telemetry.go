package identity

import (
	"context"
	"os"
	"runtime"
	"strings"

	"github.com/goliatone/go-launcher/core"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Telemetry is the host description sent with account-linking logins.
type Telemetry struct {
	UUID     string `json:"uuid"`
	ID       string `json:"id"`
	Hostname string `json:"hostname"`
	Platform string `json:"platform"`
	Type     string `json:"type"`
	Release  string `json:"release"`
	CPU      string `json:"cpu"`
	RAM      uint64 `json:"ram"`
	Arch     string `json:"arch"`
}

// DeviceInfo is the legacy auth shape, sent JSON-encoded in the Device-Info
// header.
type DeviceInfo struct {
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Type     string `json:"type"`
	Release  string `json:"release"`
	CPU      string `json:"cpu"`
	RAM      uint64 `json:"ram"`
	UUID     string `json:"uuid"`
	Arch     string `json:"arch"`
}

func (t Telemetry) DeviceInfo() DeviceInfo {
	return DeviceInfo{
		Name:     t.Hostname,
		Platform: t.Platform,
		Type:     t.Type,
		Release:  t.Release,
		CPU:      t.CPU,
		RAM:      t.RAM,
		UUID:     t.UUID,
		Arch:     t.Arch,
	}
}

type HostInfoFunc func(ctx context.Context) (*host.InfoStat, error)

type CPUInfoFunc func(ctx context.Context) ([]cpu.InfoStat, error)

type MemoryInfoFunc func(ctx context.Context) (*mem.VirtualMemoryStat, error)

// Collector gathers host telemetry. Every probe is best effort: a failing
// probe leaves its fields at their runtime defaults.
type Collector struct {
	DeviceID string
	GOOS     string
	GOARCH   string
	Host     HostInfoFunc
	CPU      CPUInfoFunc
	Memory   MemoryInfoFunc
	Logger   core.Logger
}

func NewCollector(deviceID string, logger core.Logger) *Collector {
	return &Collector{
		DeviceID: deviceID,
		GOOS:     runtime.GOOS,
		GOARCH:   runtime.GOARCH,
		Host:     host.InfoWithContext,
		CPU:      cpu.InfoWithContext,
		Memory:   mem.VirtualMemoryWithContext,
		Logger:   logger,
	}
}

func (c *Collector) Collect(ctx context.Context) Telemetry {
	if c == nil {
		c = NewCollector(UnknownDevice, nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	goos := firstNonEmpty(c.GOOS, runtime.GOOS)
	goarch := firstNonEmpty(c.GOARCH, runtime.GOARCH)
	deviceID := firstNonEmpty(c.DeviceID, UnknownDevice)

	out := Telemetry{
		UUID:     deviceID,
		Platform: Platform(goos),
		Type:     OSType(goos),
		Arch:     Arch(goarch),
	}
	if hostname, err := os.Hostname(); err == nil {
		out.Hostname = hostname
	}

	if c.Host != nil {
		info, err := c.Host(ctx)
		if err != nil {
			c.debug("host info unavailable", err)
		} else if info != nil {
			out.Hostname = firstNonEmpty(info.Hostname, out.Hostname)
			out.Release = strings.TrimSpace(info.KernelVersion)
		}
	}
	if c.CPU != nil {
		infos, err := c.CPU(ctx)
		if err != nil {
			c.debug("cpu info unavailable", err)
		} else if len(infos) > 0 {
			out.CPU = strings.TrimSpace(infos[0].ModelName)
		}
	}
	if c.Memory != nil {
		stat, err := c.Memory(ctx)
		if err != nil {
			c.debug("memory info unavailable", err)
		} else if stat != nil {
			out.RAM = stat.Total
		}
	}
	out.ID = out.Hostname
	return out
}

func (c *Collector) debug(message string, err error) {
	if c.Logger == nil || err == nil {
		return
	}
	c.Logger.Debug(message, "error", err.Error())
}

// Platform reports the GOOS value using the platform names the auth servers
// expect.
func Platform(goos string) string {
	switch goos {
	case "windows":
		return "win32"
	default:
		return goos
	}
}

func OSType(goos string) string {
	switch goos {
	case "windows":
		return "Windows_NT"
	case "darwin":
		return "Darwin"
	case "linux":
		return "Linux"
	case "freebsd":
		return "FreeBSD"
	default:
		return goos
	}
}

func Arch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "ia32"
	default:
		return goarch
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
