package hash

var hashVectorizedParallelism int = 1

// HashVectorizedParallelism reports the recommended number of hashes to compute in parallel on this platform
// Can't return 0.
func HashVectorizedParallelism() int {
	if hashVectorizedParallelism < 1 {
		return 1
	}
	return hashVectorizedParallelism
}

// HashVectorized computes out[i] = Hash(n[i], s[i], max) for the whole batch
func HashVectorized(out []uint32, n []uint32, s []uint32, max uint32) {
	for i := range out {
		out[i] = Hash(n[i], s[i], max)
	}
}
