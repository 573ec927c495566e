package config

import (
	"testing"
	"time"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	t.Setenv("JIRASEED_TIMEOUT_REQUEST", "")

	timeouts := LoadTimeouts()

	if timeouts.Request != 60*time.Second {
		t.Errorf("Expected Request default 60s, got %v", timeouts.Request)
	}
}

func TestLoadTimeouts_FromEnv(t *testing.T) {
	t.Setenv("JIRASEED_TIMEOUT_REQUEST", "5s")

	timeouts := LoadTimeouts()

	if timeouts.Request != 5*time.Second {
		t.Errorf("Expected Request 5s, got %v", timeouts.Request)
	}
}

func TestLoadTimeouts_InvalidValues(t *testing.T) {
	for _, val := range []string{"soon", "-3s", "0s"} {
		t.Run(val, func(t *testing.T) {
			t.Setenv("JIRASEED_TIMEOUT_REQUEST", val)

			if got := LoadTimeouts().Request; got != 60*time.Second {
				t.Errorf("Expected fallback 60s for %q, got %v", val, got)
			}
		})
	}
}
