package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr           string        // bind address, e.g. "127.0.0.1:8000"
	LogDir         string        // logs directory
	ProbeMode      string        // "tcp" (connect to ProbePort) or "icmp" (echo)
	ProbePort      int           // TCP port probed in tcp mode
	ProbeAttempts  int           // attempts per lookup request
	ProbeTimeout   time.Duration // per-attempt timeout
	ResolveTimeout time.Duration // one-shot DNS resolution timeout
}

func FromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8000"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	mode := os.Getenv("PROBE_MODE")
	if mode != "icmp" {
		mode = "tcp"
	}

	port := 443
	if v := os.Getenv("PROBE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			port = n
		}
	}

	attempts := 3
	if v := os.Getenv("PROBE_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			attempts = n
		}
	}

	probeTimeout := 2000 * time.Millisecond
	if v := os.Getenv("PROBE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			probeTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	resolveTimeout := 3000 * time.Millisecond
	if v := os.Getenv("RESOLVE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			resolveTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	return Config{
		Addr:           addr,
		LogDir:         logDir,
		ProbeMode:      mode,
		ProbePort:      port,
		ProbeAttempts:  attempts,
		ProbeTimeout:   probeTimeout,
		ResolveTimeout: resolveTimeout,
	}
}
