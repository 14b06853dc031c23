// Package inference is the castanet prediction entry point. It loads a
// trained model and writes the predicted label of every input row as CSV.
package inference

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/neurlang/castanet/bundle"
	"github.com/neurlang/castanet/config"
	"github.com/neurlang/castanet/datasets"
	"github.com/neurlang/castanet/datasets/csvfile"
	"github.com/neurlang/castanet/metrics"
)

// Predictor predicts labels for input files using the model at model_path
type Predictor struct {
	cfg     *config.Config
	stdout  io.Writer
	summary io.Writer
}

// New creates a predictor configured by cfg
func New(cfg *config.Config) *Predictor {
	return &Predictor{cfg: cfg, stdout: os.Stdout, summary: os.Stderr}
}

// SetOutput redirects the predictions written when output_path is empty, and the summary
func (p *Predictor) SetOutput(predictions, summary io.Writer) {
	p.stdout = predictions
	p.summary = summary
}

// Result counts the predictions of a run
type Result struct {
	Rows     int
	Labelled int
	Correct  int
	Unknown  int // labelled rows whose label the model was not trained on
}

// Accuracy is the percent of labelled rows predicted correctly, -1 without labels
func (r Result) Accuracy() int {
	if r.Labelled == 0 {
		return -1
	}
	return 100 * r.Correct / r.Labelled
}

// Run predicts every row of inputFiles in order
func (p *Predictor) Run(ctx context.Context, inputFiles []string) (err error) {
	run := metrics.NewRun("predict")
	logger := log.WithField("mode", "predict")

	model, err := bundle.Load(p.cfg.ModelPath)
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"model":   p.cfg.ModelPath,
		"id":      model.ID,
		"classes": model.Classes.Len(),
	}).Info("model loaded")

	out := p.stdout
	if p.cfg.OutputPath != "" {
		file, ferr := os.Create(p.cfg.OutputPath)
		if ferr != nil {
			return fmt.Errorf("inference: %w", ferr)
		}
		defer func() {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}()
		out = file
	}

	res, err := p.predict(ctx, model, inputFiles, csv.NewWriter(out), run)
	if err != nil {
		return err
	}

	fields := log.Fields{"rows": res.Rows, "files": len(inputFiles)}
	if res.Unknown > 0 {
		logger.WithField("rows", res.Unknown).Warn("labels unknown to the model")
	}
	if acc := res.Accuracy(); acc >= 0 {
		fields["success"] = acc
		run.Success.Set(float64(acc))
		c := color.New(color.FgGreen)
		if acc < 90 {
			c = color.New(color.FgYellow)
		}
		fmt.Fprint(p.summary, "[infer success rate] ")
		c.Fprintf(p.summary, "%d %%", acc)
		fmt.Fprintf(p.summary, " on %d labelled rows\n", res.Labelled)
	}
	logger.WithFields(fields).Info("prediction finished")

	if err := run.Write(p.cfg.MetricsFile); err != nil {
		return fmt.Errorf("inference: metrics: %w", err)
	}
	return nil
}

func (p *Predictor) predict(ctx context.Context, model *bundle.Bundle, inputFiles []string, w *csv.Writer, run *metrics.Run) (res Result, err error) {
	if err = w.Write([]string{"file", "row", "text", "predicted", "label"}); err != nil {
		return
	}
	for _, name := range inputFiles {
		if err = ctx.Err(); err != nil {
			return
		}
		var rows []datasets.Sample
		rows, err = csvfile.Read(name, csvfile.Options{
			TextField:  p.cfg.TextField,
			LabelField: p.cfg.LabelField,
			Encoding:   p.cfg.InputEncoding,
		})
		if err != nil {
			return
		}
		for i, row := range rows {
			predicted := Predict(model, row)
			if row.Label != "" {
				res.Labelled++
				if predicted == row.Label {
					res.Correct++
				}
				if _, known := model.Classes.Lookup(row.Label); !known {
					res.Unknown++
				}
			}
			if err = w.Write([]string{name, strconv.Itoa(i + 1), row.Text, predicted, row.Label}); err != nil {
				return
			}
		}
		res.Rows += len(rows)
		log.WithFields(log.Fields{
			"mode":     "predict",
			"file":     name,
			"rows":     len(rows),
			"labelled": csvfile.HasLabels(rows),
		}).Debug("input file predicted")
		run.Files.Inc()
		run.Samples.Add(float64(len(rows)))
	}
	w.Flush()
	err = w.Error()
	return
}

// Predict returns the label the model assigns to the sample. A class
// index beyond the known labels gives the label of class 0.
func Predict(model *bundle.Bundle, s datasets.Sample) string {
	class := model.Network.Infer(s)
	if int(class) >= model.Classes.Len() {
		class = 0
	}
	return model.Classes.Name(class)
}
