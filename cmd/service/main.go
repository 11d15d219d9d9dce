package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitlog/internal"
	"github.com/2beens/fitlog/internal/config"
	"github.com/2beens/fitlog/internal/logging"
	"github.com/2beens/fitlog/pkg"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development | ddev | dockerdev ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	flushLogs := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "fitlog-backend",
	})
	defer flushLogs()

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	jwtSecret := os.Getenv("FITLOG_JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalln("jwt secret not set. use FITLOG_JWT_SECRET")
	}

	redisPassword := os.Getenv("FITLOG_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use FITLOG_REDIS_PASS")
	}

	postgresPassword := os.Getenv("FITLOG_POSTGRES_PASS")
	if postgresPassword == "" {
		log.Warnln("postgres password not set. use FITLOG_POSTGRES_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			JWTSecret:               jwtSecret,
			RedisPassword:           redisPassword,
			PostgresPassword:        postgresPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)

	server.GracefulShutdown()
}

// tryGetLastCommitHash assumes the binary runs from within the repo checkout.
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
