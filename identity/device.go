package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/denisbrodbeck/machineid"
	"github.com/goliatone/go-launcher/core"
)

// UnknownDevice is reported when no machine identifier can be resolved.
const UnknownDevice = "unknown-device"

// MachineID reads the platform machine identifier.
func MachineID() (string, error) {
	return machineid.ID()
}

// ResolveDeviceID resolves a best-effort stable device fingerprint: the
// SHA-256 hex digest of the raw machine id. Resolution failures fall back to
// UnknownDevice and are logged.
func ResolveDeviceID(source core.MachineIDSource, logger core.Logger) string {
	if source == nil {
		source = MachineID
	}
	raw, err := source()
	if err != nil {
		if logger != nil {
			logger.Error("failed to get machine id", "error", err.Error())
		}
		return UnknownDevice
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if logger != nil {
			logger.Error("failed to get machine id", "error", "empty machine id")
		}
		return UnknownDevice
	}
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
