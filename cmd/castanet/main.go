package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/neurlang/castanet/config"
	"github.com/neurlang/castanet/dispatch"
	"github.com/neurlang/castanet/inference"
	"github.com/neurlang/castanet/learning"
	"github.com/neurlang/castanet/trainer"
)

func main() {
	// must happen before any training code runs
	if err := quietSolver(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.Path()); err != nil {
		stop()
		log.Fatal(err)
	}
}

// quietSolver silences the solver progress bar and warnings, unless the
// environment already chose a level
func quietSolver() error {
	if _, ok := os.LookupEnv(learning.LogLevelEnv); ok {
		return nil
	}
	return os.Setenv(learning.LogLevelEnv, "3")
}

func run(ctx context.Context, path string) error {
	return dispatch.Run(ctx, func() (*config.Config, error) {
		c, err := config.Initialize(path)
		if err != nil {
			return nil, err
		}
		if err := setupLogging(c); err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{
			"config":   c.File(),
			"run_mode": c.RunMode,
			"model":    c.ModelPath,
		}).Debug("configuration loaded")
		return c, nil
	}, func(c *config.Config) dispatch.Routes {
		return dispatch.Routes{
			Train:   trainer.New(c),
			Predict: inference.New(c),
		}
	})
}

func setupLogging(c *config.Config) error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	log.SetLevel(level)
	switch c.LogFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("config: unknown log_format %q", c.LogFormat)
	}
	log.SetOutput(os.Stderr)
	return nil
}
