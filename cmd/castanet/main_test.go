package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/castanet/config"
	"github.com/neurlang/castanet/learning"
)

func writeConfig(t *testing.T, body string) (string, string) {
	t.Helper()
	t.Setenv("HASHTRON_MIN_LOG_LEVEL", "3")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"),
		[]byte("text,label\nred apple,fruit\nbrown potato,vegetable\n"), 0o644))
	path := filepath.Join(dir, "castanet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body+
		"input_dir: "+dir+"\nmodel_path: "+filepath.Join(dir, "m")+"\nfeatures: 5\nlog_level: warning\n"), 0o644))
	return path, dir
}

func TestRunMissingConfig(t *testing.T) {
	err := run(context.Background(), filepath.Join(t.TempDir(), "none.yaml"))
	require.ErrorIs(t, err, config.ErrNoConfig)
}

func TestRunNoMode(t *testing.T) {
	for _, mode := range []string{"", "run_mode: evaluate\n", "run_mode: TRAIN\n"} {
		path, dir := writeConfig(t, mode)
		require.NoError(t, run(context.Background(), path))
		_, err := os.Stat(filepath.Join(dir, "m"))
		require.ErrorIs(t, err, os.ErrNotExist, mode)
	}
}

func TestRunTrainThenPredict(t *testing.T) {
	path, dir := writeConfig(t, "run_mode: train\n")
	require.NoError(t, run(context.Background(), path))
	_, err := os.Stat(filepath.Join(dir, "m.yaml"))
	require.NoError(t, err)
	require.Equal(t, log.WarnLevel, log.GetLevel())

	out := filepath.Join(dir, "out.txt")
	t.Setenv("CASTANET_RUN_MODE", "predict")
	t.Setenv("CASTANET_OUTPUT_PATH", out)
	require.NoError(t, run(context.Background(), path))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "red apple,fruit,fruit")
}

func TestRunPredictWithoutModel(t *testing.T) {
	path, _ := writeConfig(t, "run_mode: predict\n")
	require.Error(t, run(context.Background(), path))
}

func TestQuietSolver(t *testing.T) {
	t.Setenv(learning.LogLevelEnv, "")
	require.NoError(t, os.Unsetenv(learning.LogLevelEnv))
	require.NoError(t, quietSolver())
	require.Equal(t, "3", os.Getenv(learning.LogLevelEnv))
	require.True(t, learning.New().DisableProgressBar)

	t.Setenv(learning.LogLevelEnv, "0")
	require.NoError(t, quietSolver())
	require.Equal(t, "0", os.Getenv(learning.LogLevelEnv))
	require.False(t, learning.New().DisableProgressBar)
}

func TestSetupLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	require.NoError(t, setupLogging(&config.Config{LogLevel: "debug", LogFormat: "json"}))
	require.Equal(t, log.DebugLevel, log.GetLevel())
	require.Error(t, setupLogging(&config.Config{LogLevel: "loud", LogFormat: "text"}))
	require.Error(t, setupLogging(&config.Config{LogLevel: "info", LogFormat: "xml"}))
}
