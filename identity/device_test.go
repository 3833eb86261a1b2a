package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
)

func TestResolveDeviceID_HashesMachineID(t *testing.T) {
	source := func() (string, error) { return " machine-1234 \n", nil }
	sum := sha256.Sum256([]byte("machine-1234"))
	expected := hex.EncodeToString(sum[:])

	got := ResolveDeviceID(source, nil)
	if got != expected {
		t.Fatalf("expected %s, got %s", expected, got)
	}
	if again := ResolveDeviceID(source, nil); again != got {
		t.Fatalf("expected stable fingerprint, got %s then %s", got, again)
	}
}

func TestResolveDeviceID_FallsBackToSentinel(t *testing.T) {
	cases := map[string]func() (string, error){
		"error": func() (string, error) { return "", errors.New("no machine id") },
		"empty": func() (string, error) { return "   ", nil },
	}
	for name, source := range cases {
		t.Run(name, func(t *testing.T) {
			if got := ResolveDeviceID(source, nil); got != UnknownDevice {
				t.Fatalf("expected %q, got %q", UnknownDevice, got)
			}
		})
	}
}
