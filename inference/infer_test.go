package inference

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurlang/castanet/bundle"
	"github.com/neurlang/castanet/config"
	"github.com/neurlang/castanet/metrics"
	"github.com/neurlang/castanet/trainer"
)

const train = `text,label
red apple,fruit
orange carrot,vegetable
yellow banana,fruit
brown potato,vegetable
`

func setup(t *testing.T, extra string) (*config.Config, string) {
	t.Helper()
	t.Setenv("HASHTRON_MIN_LOG_LEVEL", "3")
	dir := t.TempDir()
	in := filepath.Join(dir, "train.csv")
	require.NoError(t, os.WriteFile(in, []byte(train), 0o644))
	cfg, err := config.Parse("test.yaml", []byte(
		"model_path: "+filepath.Join(dir, "model")+"\nfeatures: 7\nthreads: 2\n"+extra))
	require.NoError(t, err)

	tr := trainer.New(cfg)
	tr.SetOutput(&bytes.Buffer{})
	require.NoError(t, tr.Run(context.Background(), []string{in}))
	return cfg, in
}

func TestRunOnTrainingData(t *testing.T) {
	cfg, in := setup(t, "")
	var out, summary bytes.Buffer
	p := New(cfg)
	p.SetOutput(&out, &summary)
	require.NoError(t, p.Run(context.Background(), []string{in}))

	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	require.Equal(t, []string{"file", "row", "text", "predicted", "label"}, records[0])
	for _, r := range records[1:] {
		require.Equal(t, in, r[0])
		require.Equal(t, r[4], r[3], r[2])
	}
	require.Equal(t, "1", records[1][1])
	require.Contains(t, summary.String(), "100 %")
}

func TestRunUnlabelledToFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "predictions.csv")
	cfg, _ := setup(t, "output_path: "+output+"\nmetrics_file: "+filepath.Join(dir, "p.prom")+"\n")

	in := filepath.Join(dir, "new.csv")
	require.NoError(t, os.WriteFile(in, []byte("text\nred apple\nsomething unseen\n"), 0o644))

	var summary bytes.Buffer
	p := New(cfg)
	p.SetOutput(&bytes.Buffer{}, &summary)
	require.NoError(t, p.Run(context.Background(), []string{in}))
	require.Empty(t, summary.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "fruit", records[1][3])
	require.Contains(t, []string{"fruit", "vegetable"}, records[2][3])
	require.Equal(t, "", records[1][4])

	_, err = os.Stat(cfg.MetricsFile)
	require.NoError(t, err)
}

func TestRunEmptyInput(t *testing.T) {
	cfg, _ := setup(t, "")
	var out bytes.Buffer
	p := New(cfg)
	p.SetOutput(&out, &bytes.Buffer{})
	require.NoError(t, p.Run(context.Background(), []string{}))
	require.Equal(t, "file,row,text,predicted,label\n", out.String())
}

func TestRunMissingModel(t *testing.T) {
	cfg, err := config.Parse("test.yaml", []byte("model_path: "+filepath.Join(t.TempDir(), "none")+"\n"))
	require.NoError(t, err)
	err = New(cfg).Run(context.Background(), nil)
	require.ErrorIs(t, err, bundle.ErrNoModel)
}

func TestRunCancelled(t *testing.T) {
	cfg, in := setup(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New(cfg)
	p.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorIs(t, p.Run(ctx, []string{in}), context.Canceled)
}

func TestRunUnknownLabels(t *testing.T) {
	cfg, _ := setup(t, "")
	in := filepath.Join(t.TempDir(), "more.csv")
	require.NoError(t, os.WriteFile(in, []byte("text,label\nred apple,fruit\nwalnut,nut\nbread,\n"), 0o644))

	var out, summary bytes.Buffer
	p := New(cfg)
	p.SetOutput(&out, &summary)
	res, err := p.predict(context.Background(), mustLoad(t, cfg), []string{in}, csv.NewWriter(&out), metrics.NewRun("predict"))
	require.NoError(t, err)
	require.Equal(t, Result{Rows: 3, Labelled: 2, Correct: 1, Unknown: 1}, res)
}

func mustLoad(t *testing.T, cfg *config.Config) *bundle.Bundle {
	t.Helper()
	b, err := bundle.Load(cfg.ModelPath)
	require.NoError(t, err)
	return b
}

func TestResultAccuracy(t *testing.T) {
	require.Equal(t, -1, Result{Rows: 3}.Accuracy())
	require.Equal(t, 50, Result{Rows: 4, Labelled: 4, Correct: 2}.Accuracy())
}
