package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/gymlog/internal"
	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/logging"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        cfg.Secrets.SentryDSN,
		SentryServerName: "gymlog-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using storage: [%s]", cfg.Storage)
	log.Debugf("page talks to workouts api at: [%s]", cfg.APIBaseURL)

	if cfg.RedisEnabled() && cfg.Secrets.RedisPassword == "" {
		log.Warnln("redis password not set. use GYMLOG_REDIS_PASS")
	}
	if cfg.Storage == config.StoragePostgres && cfg.Secrets.PostgresPassword == "" {
		log.Warnln("postgres password not set. use GYMLOG_POSTGRES_PASS")
	}

	if cfg.Secrets.HoneycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
		if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
			log.Warnln("OTEL_SERVICE_NAME env var not set")
		}
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := internal.NewServer(ctx, cfg)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}
