package client

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	envServerURL  = "IPTEST_SERVER_URL"
	envTimeoutSec = "IPTEST_TIMEOUT_SECONDS"
	envConfigDir  = "IPTEST_CONFIG_DIR"

	configName = "client_config"

	// DefaultBaseURL matches the server's compiled-in bind address.
	DefaultBaseURL = "http://127.0.0.1:8000"

	// defaultTimeout stays well above any sane server probing budget so the
	// client never gives up before the server has finished its attempts.
	defaultTimeout = 35 * time.Second
)

// Endpoint is the resolved server location for one client invocation.
type Endpoint struct {
	BaseURL string
	Timeout time.Duration
	Source  string // "env", "config_file" or "default"
}

// ResolveEndpoint picks the server endpoint in strict priority order:
// the IPTEST_SERVER_URL environment variable, then a client_config.json file
// (IPTEST_CONFIG_DIR, the user config dir, then the working directory), then
// the compiled-in loopback default. A config file that is present but does
// not parse is reported as a loud warning and falls through to the default;
// it is never silently ignored and never fatal.
func ResolveEndpoint(log *zap.Logger) Endpoint {
	timeout := resolveTimeout()

	if url := strings.TrimSpace(os.Getenv(envServerURL)); url != "" {
		return Endpoint{BaseURL: normalizeBaseURL(url), Timeout: timeout, Source: "env"}
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("json")
	if dir := os.Getenv(envConfigDir); dir != "" {
		v.AddConfigPath(dir)
	}
	if ucd, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(ucd, "iptest"))
	}
	v.AddConfigPath(".")

	switch err := v.ReadInConfig(); {
	case err == nil:
		if url := strings.TrimSpace(v.GetString("server_url")); url != "" {
			return Endpoint{BaseURL: normalizeBaseURL(url), Timeout: timeout, Source: "config_file"}
		}
		log.Warn("config file has no server_url; using default",
			zap.String("file", v.ConfigFileUsed()))
	default:
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn("config file present but unreadable; using default",
				zap.Error(err))
		}
	}

	return Endpoint{BaseURL: DefaultBaseURL, Timeout: timeout, Source: "default"}
}

func resolveTimeout() time.Duration {
	if v := os.Getenv(envTimeoutSec); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return defaultTimeout
}

func normalizeBaseURL(raw string) string {
	url := strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.Contains(url, "://") {
		url = "http://" + url
	}
	return url
}
