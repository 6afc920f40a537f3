package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/iptest/internal/config"
	"github.com/hamed0406/iptest/internal/httpapi"
	"github.com/hamed0406/iptest/internal/logging"
	"github.com/hamed0406/iptest/internal/probe"
)

func main() {
	// best-effort; env vars win either way
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}

	var checker probe.Checker
	switch cfg.ProbeMode {
	case "icmp":
		checker = probe.NewICMPChecker()
	default:
		checker = probe.NewTCPChecker(cfg.ProbePort)
	}
	engine := probe.NewEngine(checker, probe.NewNetResolver(cfg.ResolveTimeout))

	api := httpapi.NewServer(logger, engine, cfg.ProbeAttempts, cfg.ProbeTimeout, cfg.ResolveTimeout)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.Router(),
	}

	go func() {
		logger.Info("server_start",
			zap.String("addr", cfg.Addr),
			zap.String("probe_mode", cfg.ProbeMode),
			zap.Int("probe_port", cfg.ProbePort),
			zap.Int("attempts", cfg.ProbeAttempts),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("server_stop")
	shutdownErr := multierr.Append(srv.Shutdown(ctx), logger.Sync())
	if shutdownErr != nil {
		log.Printf("shutdown: %v", shutdownErr)
	}
}
