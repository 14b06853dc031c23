package trainer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurlang/castanet/bundle"
	"github.com/neurlang/castanet/config"
	"github.com/neurlang/castanet/datasets/csvfile"
)

const fruits = `text,label
apple,fruit
carrot,vegetable
banana,fruit
potato,vegetable
cherry,fruit
leek,vegetable
walnut,nut
`

func setup(t *testing.T) (*config.Config, string) {
	t.Helper()
	t.Setenv("HASHTRON_MIN_LOG_LEVEL", "3")
	dir := t.TempDir()
	in := filepath.Join(dir, "fruits.csv")
	require.NoError(t, os.WriteFile(in, []byte(fruits), 0o644))
	cfg, err := config.Parse("test.yaml", []byte(
		"model_path: "+filepath.Join(dir, "model")+"\n"+
			"metrics_file: "+filepath.Join(dir, "train.prom")+"\n"+
			"features: 9\nthreads: 2\n"))
	require.NoError(t, err)
	return cfg, in
}

func TestRun(t *testing.T) {
	cfg, in := setup(t)
	var out bytes.Buffer
	tr := New(cfg)
	tr.SetOutput(&out)
	require.NoError(t, tr.Run(context.Background(), []string{in}))

	require.Contains(t, out.String(), "[success rate]")
	require.Contains(t, out.String(), "100 %")

	b, err := bundle.Load(cfg.ModelPath)
	require.NoError(t, err)
	require.Equal(t, []string{"fruit", "vegetable", "nut"}, b.Classes.Names())
	require.Equal(t, byte(2), b.Network.GetBits())
	require.Equal(t, 9, b.Network.Len())
	require.Equal(t, 7, b.Samples)
	require.Equal(t, 100, b.Success)
	require.Equal(t, []string{in}, b.InputFiles)
	require.Positive(t, b.FilterBytes)

	_, err = os.Stat(cfg.MetricsFile)
	require.NoError(t, err)
}

func TestRunNoSamples(t *testing.T) {
	cfg, _ := setup(t)
	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("text,label\n"), 0o644))

	require.ErrorIs(t, New(cfg).Run(context.Background(), []string{empty}), ErrNoSamples)
	require.ErrorIs(t, New(cfg).Run(context.Background(), nil), ErrNoSamples)
}

func TestRunNeedsLabels(t *testing.T) {
	cfg, _ := setup(t)
	unlabelled := filepath.Join(t.TempDir(), "u.csv")
	require.NoError(t, os.WriteFile(unlabelled, []byte("text\nfoo\n"), 0o644))
	require.ErrorIs(t, New(cfg).Run(context.Background(), []string{unlabelled}), csvfile.ErrNoLabel)
}

func TestRunMissingFile(t *testing.T) {
	cfg, _ := setup(t)
	err := New(cfg).Run(context.Background(), []string{filepath.Join(t.TempDir(), "nope.csv")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCancelled(t *testing.T) {
	cfg, in := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, New(cfg).Run(ctx, []string{in}), context.Canceled)
	_, err := os.Stat(cfg.ModelPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSampleSize(t *testing.T) {
	require.Equal(t, 0, sampleSize(0, 95))
	require.Equal(t, 1, sampleSize(1, 95))
	require.Equal(t, 6, sampleSize(7, 95))
	require.LessOrEqual(t, sampleSize(100000, 95), 400)
	require.Equal(t, 50, sampleSize(50, 100))
}

func TestRunSkipsRowsWithoutLabel(t *testing.T) {
	cfg, _ := setup(t)
	in := filepath.Join(t.TempDir(), "gaps.csv")
	require.NoError(t, os.WriteFile(in, []byte("text,label\napple,fruit\nmystery,\ncarrot,vegetable\n"), 0o644))
	tr := New(cfg)
	tr.SetOutput(&bytes.Buffer{})
	require.NoError(t, tr.Run(context.Background(), []string{in}))

	b, err := bundle.Load(cfg.ModelPath)
	require.NoError(t, err)
	require.Equal(t, 2, b.Samples)
	require.Equal(t, []string{"fruit", "vegetable"}, b.Classes.Names())
}

func TestSplit(t *testing.T) {
	for _, tc := range []struct {
		threads, hashtrons int
		jobs, solvers      int
	}{
		{2, 9, 2, 1},
		{8, 3, 3, 2},
		{1, 24, 1, 1},
		{16, 24, 16, 1},
		{5, 0, 1, 5},
	} {
		jobs, solvers := split(tc.threads, tc.hashtrons)
		require.Equal(t, tc.jobs, jobs, "%+v", tc)
		require.Equal(t, tc.solvers, solvers, "%+v", tc)
	}
	jobs, solvers := split(0, 1)
	require.Equal(t, 1, jobs)
	require.GreaterOrEqual(t, solvers, 1)
}
