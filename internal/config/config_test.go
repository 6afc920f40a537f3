package config

import (
	"testing"
	"time"
)

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_DIR", "./_testlogs")
	t.Setenv("PROBE_MODE", "icmp")
	t.Setenv("PROBE_PORT", "8443")
	t.Setenv("PROBE_ATTEMPTS", "5")
	t.Setenv("PROBE_TIMEOUT_MS", "1500")
	t.Setenv("RESOLVE_TIMEOUT_MS", "2500")

	cfg := FromEnv()

	if cfg.Addr != ":9090" || cfg.LogDir != "./_testlogs" {
		t.Fatalf("addr/logdir wrong: %+v", cfg)
	}
	if cfg.ProbeMode != "icmp" || cfg.ProbePort != 8443 || cfg.ProbeAttempts != 5 {
		t.Fatalf("probe knobs wrong: %+v", cfg)
	}
	if cfg.ProbeTimeout != 1500*time.Millisecond || cfg.ResolveTimeout != 2500*time.Millisecond {
		t.Fatalf("timeouts wrong: %+v", cfg)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("PROBE_MODE", "")
	t.Setenv("PROBE_PORT", "")
	t.Setenv("PROBE_ATTEMPTS", "")
	t.Setenv("PROBE_TIMEOUT_MS", "")

	cfg := FromEnv()

	if cfg.Addr != "127.0.0.1:8000" {
		t.Fatalf("default addr wrong: %q", cfg.Addr)
	}
	if cfg.ProbeMode != "tcp" || cfg.ProbePort != 443 || cfg.ProbeAttempts != 3 {
		t.Fatalf("probe defaults wrong: %+v", cfg)
	}
	if cfg.ProbeTimeout != 2*time.Second {
		t.Fatalf("default probe timeout wrong: %s", cfg.ProbeTimeout)
	}
}

func TestFromEnv_IgnoresGarbage(t *testing.T) {
	t.Setenv("PROBE_PORT", "notaport")
	t.Setenv("PROBE_ATTEMPTS", "-2")
	t.Setenv("PROBE_TIMEOUT_MS", "0")
	t.Setenv("PROBE_MODE", "carrier-pigeon")

	cfg := FromEnv()
	if cfg.ProbePort != 443 || cfg.ProbeAttempts != 3 || cfg.ProbeTimeout != 2*time.Second || cfg.ProbeMode != "tcp" {
		t.Fatalf("garbage env must fall back to defaults: %+v", cfg)
	}
}
