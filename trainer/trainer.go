package trainer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/neurlang/quaternary"
	log "github.com/sirupsen/logrus"

	"github.com/neurlang/castanet/bundle"
	"github.com/neurlang/castanet/config"
	"github.com/neurlang/castanet/datasets"
	"github.com/neurlang/castanet/datasets/csvfile"
	"github.com/neurlang/castanet/hash"
	"github.com/neurlang/castanet/learning"
	"github.com/neurlang/castanet/metrics"
	"github.com/neurlang/castanet/net/feedforward"
	"github.com/neurlang/castanet/parallel"
)

// ErrNoSamples is returned when the input files hold no samples at all
var ErrNoSamples = errors.New("trainer: no training samples")

// Trainer trains a model from labelled input files
type Trainer struct {
	cfg *config.Config
	out io.Writer
}

// New creates a trainer configured by cfg, writing its summary to stdout
func New(cfg *config.Config) *Trainer {
	return &Trainer{cfg: cfg, out: os.Stdout}
}

// SetOutput redirects the summary
func (t *Trainer) SetOutput(w io.Writer) {
	t.out = w
}

// Run trains on inputFiles and saves the model to model_path
func (t *Trainer) Run(ctx context.Context, inputFiles []string) error {
	run := metrics.NewRun("train")
	logger := log.WithField("mode", "train")

	samples, classes, err := t.load(inputFiles, run, logger)
	if err != nil {
		return err
	}

	net, err := feedforward.New(t.cfg.Features, classes.Bits())
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"samples":   len(samples),
		"classes":   classes.Len(),
		"bits":      net.GetBits(),
		"hashtrons": net.Len(),
		"cpu":       hash.CPUBrand(),
		"simd":      hash.CPUFeatures(),
	}).Info("training network")

	h := learning.New()
	jobs, solvers := split(t.cfg.Threads, net.Len())
	h.Threads = solvers
	h.Attempts = uint32(t.cfg.Attempts)
	h.MaxSteps = t.cfg.MaxSteps

	start := time.Now()
	var filters atomic.Int64
	err = parallel.ForEachErr(ctx, net.Len(), jobs, func(worst int) error {
		size, err := trainWorst(net, samples, worst, h, logger)
		filters.Add(int64(size))
		return err
	})
	if err != nil {
		return err
	}

	eval := Evaluate(net, samples, t.cfg.Significance)
	logger.WithFields(log.Fields{
		"success":   eval.Success,
		"evaluated": eval.Evaluated,
		"errors":    eval.Errors,
		"state":     eval.Fingerprint(),
		"took":      time.Since(start).Round(time.Millisecond),
	}).Info("training finished")

	b := bundle.New(net, t.cfg.Features, classes)
	b.Samples = len(samples)
	b.Success = eval.Success
	b.Fingerprint = eval.Fingerprint()
	b.FilterBytes = int(filters.Load())
	b.InputFiles = inputFiles
	if err := b.Save(t.cfg.ModelPath); err != nil {
		return err
	}
	logger.WithFields(log.Fields{"model": t.cfg.ModelPath, "id": b.ID}).Info("model saved")

	summary(t.out, eval)
	run.Success.Set(float64(eval.Success))
	if err := run.Write(t.cfg.MetricsFile); err != nil {
		return fmt.Errorf("trainer: metrics: %w", err)
	}
	return nil
}

// load reads every input file and assigns classes in first seen order.
// Rows with an empty label cell are skipped.
func (t *Trainer) load(inputFiles []string, run *metrics.Run, logger *log.Entry) ([]datasets.ClassSample, *datasets.Labels, error) {
	classes, err := datasets.NewLabels()
	if err != nil {
		return nil, nil, err
	}
	var samples []datasets.ClassSample
	for _, name := range inputFiles {
		rows, err := csvfile.Read(name, csvfile.Options{
			TextField:  t.cfg.TextField,
			LabelField: t.cfg.LabelField,
			Encoding:   t.cfg.InputEncoding,
			NeedLabel:  true,
		})
		if err != nil {
			return nil, nil, err
		}
		var skipped int
		for _, row := range rows {
			if row.Label == "" {
				skipped++
				continue
			}
			class, err := classes.Class(row.Label)
			if err != nil {
				return nil, nil, err
			}
			samples = append(samples, datasets.ClassSample{Sample: row, Class: class})
		}
		if skipped > 0 {
			logger.WithFields(log.Fields{"file": name, "rows": skipped}).Warn("rows without label skipped")
		}
		run.Files.Inc()
		run.Samples.Add(float64(len(rows) - skipped))
		logger.WithFields(log.Fields{"file": name, "samples": len(rows) - skipped}).Debug("input file read")
	}
	if len(samples) == 0 {
		return nil, nil, ErrNoSamples
	}
	return samples, classes, nil
}

// split shares threads between hashtrons trained at once and the solver
// threads of each
func split(threads, hashtrons int) (jobs, solvers int) {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	jobs = threads
	if jobs > hashtrons {
		jobs = hashtrons
	}
	if jobs < 1 {
		jobs = 1
	}
	solvers = threads / jobs
	if solvers < 1 {
		solvers = 1
	}
	return
}

// trainWorst tallies the votes of all samples for one hashtron and solves it.
// It returns the size of the tally as a quaternary filter.
func trainWorst(net *feedforward.FeedforwardNetwork, samples []datasets.ClassSample, worst int,
	h *learning.HyperParameters, logger *log.Entry) (size int, err error) {

	var tally = datasets.NewTally()
	parallel.ForEach(len(samples), 1000, func(j int) {
		net.Tally(samples[j], worst, tally)
	})
	dset := tally.Dataset()
	tally.Free()
	if len(dset) > 0 {
		size = len(quaternary.Make(dset))
	}

	htron, err := h.Training(dset.Split(), net.GetBits())
	if err != nil {
		return size, fmt.Errorf("trainer: hashtron %d: %w", worst, err)
	}
	logger.WithFields(log.Fields{
		"hashtron": worst,
		"of":       net.Len(),
		"job":      len(dset),
		"program":  htron.Len(),
		"filter":   size,
	}).Debug("hashtron trained")
	*net.GetHashtron(worst) = *htron
	return size, nil
}

func summary(w io.Writer, e Evaluation) {
	c := color.New(color.FgGreen)
	switch {
	case e.Success < 50:
		c = color.New(color.FgRed)
	case e.Success < 90:
		c = color.New(color.FgYellow)
	}
	fmt.Fprint(w, "[success rate] ")
	c.Fprintf(w, "%d %%", e.Success)
	fmt.Fprintf(w, " with %d errors on %d samples\n", e.Errors, e.Evaluated)
}
