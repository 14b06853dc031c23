package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	r := NewRun("train")
	r.Samples.Add(12)
	r.Files.Inc()
	r.Success.Set(75)

	require.NoError(t, r.Write(""))

	name := filepath.Join(t.TempDir(), "castanet.prom")
	require.NoError(t, r.Write(name))
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Contains(t, string(data), `castanet_samples_total{mode="train"} 12`)
	require.Contains(t, string(data), `castanet_success_rate_percent{mode="train"} 75`)
	require.Contains(t, string(data), "castanet_run_duration_seconds")
}
