package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pulsefit/core/internal/config"
	"github.com/pulsefit/core/internal/devserver"
	"github.com/pulsefit/core/internal/logging"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting dev server ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "pulsefit-devserver",
	})

	log.Debugf("using host and port: %s:%d", cfg.DevServerHost, cfg.DevServerPort)
	if cfg.RedisEnabled() {
		log.Debugf("using redis session store: %s:%d", cfg.RedisHost, cfg.RedisPort)
	} else {
		log.Debug("redis host not set, sessions are held in memory")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server := devserver.NewServer(cfg)
	server.Serve(ctx)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}
