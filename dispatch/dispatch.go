// Package dispatch routes a castanet run to training or prediction
package dispatch

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Runner is a top-level operation working on the ordered input file list
type Runner interface {
	Run(ctx context.Context, inputFiles []string) error
}

// RunnerFunc adapts a function to Runner
type RunnerFunc func(ctx context.Context, inputFiles []string) error

// Run calls f
func (f RunnerFunc) Run(ctx context.Context, inputFiles []string) error {
	return f(ctx, inputFiles)
}

// Routes holds the entry point of every live run mode
type Routes struct {
	Train   Runner
	Predict Runner
}

// Dispatch invokes exactly one entry point for mode, or none for ModeNone.
// Errors of the entry point are returned unchanged.
func (r Routes) Dispatch(ctx context.Context, mode RunMode, inputFiles []string) error {
	switch mode {
	case ModeTrain:
		return r.Train.Run(ctx, inputFiles)
	case ModePredict:
		return r.Predict.Run(ctx, inputFiles)
	case ModeNone:
		log.WithField("run_mode", mode).Debug("nothing to do")
		return nil
	}
	return nil
}

// Settings is the read-only view of the configuration the dispatcher needs
type Settings interface {
	Get(key string) string
	InputFiles() ([]string, error)
}

// Run initializes the configuration once, then reads run_mode and the input
// files and dispatches to the routes built from the configuration.
func Run[S Settings](ctx context.Context, initialize func() (S, error), routes func(S) Routes) error {
	settings, err := initialize()
	if err != nil {
		return err
	}
	mode := ParseRunMode(settings.Get("run_mode"))
	files, err := settings.InputFiles()
	if err != nil {
		return err
	}
	return routes(settings).Dispatch(ctx, mode, files)
}
