package learning

import (
	"os"
	"runtime"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// LogLevelEnv is read by New. 0 prints everything, 1 hides the progress bar,
// 2 and above also hides the solver warnings.
const LogLevelEnv = "HASHTRON_MIN_LOG_LEVEL"

type HyperParameters struct {
	Threads int // number of threads for learning

	Shuffle bool // whether to shuffle the set before each learning attempt
	Seed    bool // seed prng using true rng

	Attempts uint32 // salts tried at one modulo before the modulo is grown
	MaxSteps int    // give up after this many solver steps

	Factor uint32 // initial modulo is the squared problem size divided by Factor

	Subtractor uint32 // how fast is the modulo reduced after each step

	DisableProgressBar bool

	l *log.Logger
}

// New returns the default hyperparameters, honouring HASHTRON_MIN_LOG_LEVEL
func New() *HyperParameters {
	h := &HyperParameters{
		Threads:    runtime.NumCPU(),
		Shuffle:    true,
		Seed:       true,
		Attempts:   4096,
		MaxSteps:   4096,
		Factor:     1,
		Subtractor: 1,
	}
	level, _ := strconv.Atoi(os.Getenv(LogLevelEnv))
	h.DisableProgressBar = level >= 1

	h.l = log.New()
	h.l.SetOutput(log.StandardLogger().Out)
	h.l.SetFormatter(log.StandardLogger().Formatter)
	if level >= 2 {
		h.l.SetLevel(log.ErrorLevel)
	} else {
		h.l.SetLevel(log.StandardLogger().GetLevel())
	}
	return h
}

// Logger returns the solver logger
func (h *HyperParameters) Logger() *log.Logger {
	if h.l == nil {
		h.l = log.StandardLogger()
	}
	return h.l
}
