package trainer

import (
	"encoding/hex"
	"math"
	"sync/atomic"

	"github.com/neurlang/castanet/datasets"
	"github.com/neurlang/castanet/net/feedforward"
	"github.com/neurlang/castanet/parallel"
)

// sampleSize calculates the statistically sufficient sample size
// for a given dataset size N and significance level (0 to 100).
func sampleSize(N int, significance byte) int {
	if N <= 1 || significance >= 100 {
		return N
	}

	z := zScoreFromAlpha(100 - significance)

	// worst-case proportion p = 0.5 for max variability
	p := 0.5
	e := float64(100-significance) * 0.01

	ss := math.Pow(z, 2) * p * (1 - p) / math.Pow(e, 2)

	// finite population correction
	correctedSS := ss * float64(N) / (float64(N) - 1 + ss)

	if int(correctedSS) > N {
		return N
	}
	if correctedSS < 1 {
		return 1
	}
	return int(correctedSS)
}

// zScoreFromAlpha returns the Z-score for a given alpha level
// Common: 90% => 1.645, 95% => 1.96, 99% => 2.576
func zScoreFromAlpha(alpha byte) float64 {
	switch {
	case alpha <= 1:
		return 2.576
	case alpha <= 5:
		return 1.96
	case alpha <= 10:
		return 1.645
	default:
		return 1.96
	}
}

// Evaluation is the outcome of scoring a network on labelled samples
type Evaluation struct {
	Evaluated int
	Correct   int
	Errors    uint64 // sum of absolute class distances
	Success   int    // percent
	State     [32]byte
}

// Fingerprint is the hex form of State
func (e Evaluation) Fingerprint() string {
	return hex.EncodeToString(e.State[:])
}

// Evaluate scores the network on the first sampleSize(len(samples)) samples.
// State fingerprints the predictions, so equal models give equal states.
func Evaluate(net *feedforward.FeedforwardNetwork, samples []datasets.ClassSample, significance byte) (e Evaluation) {
	var length = sampleSize(len(samples), significance)
	if length == 0 {
		return
	}
	var correct, errsum atomic.Uint64
	hsh := parallel.NewUint16Hasher(length)
	parallel.ForEach(length, 1000, func(j int) {
		var predicted = net.Infer(samples[j])
		hsh.MustPutUint16(j, predicted)
		if predicted == samples[j].Output() {
			correct.Add(1)
		}
		errsum.Add(uint64(errorAbs(predicted, samples[j].Output())))
	})
	e.Evaluated = length
	e.Correct = int(correct.Load())
	e.Errors = errsum.Load()
	e.Success = 100 * e.Correct / length
	e.State = hsh.Sum()
	return
}

func errorAbs(a, b uint16) uint16 {
	if a > b {
		return a - b
	}
	return b - a
}
