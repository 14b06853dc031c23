package hash

import "github.com/klauspost/cpuid/v2"

func init() {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ):
		hashVectorizedParallelism = 16
	case cpuid.CPU.Supports(cpuid.AVX2):
		hashVectorizedParallelism = 8
	default:
		hashVectorizedParallelism = 1
	}
}

// CPUFeatures lists the vector extensions relevant to batch hashing, for logging.
func CPUFeatures() (o []string) {
	for _, f := range []cpuid.FeatureID{cpuid.SSE4, cpuid.AVX, cpuid.AVX2, cpuid.AVX512F, cpuid.AVX512DQ} {
		if cpuid.CPU.Supports(f) {
			o = append(o, f.String())
		}
	}
	return
}

// CPUBrand reports the brand name of the processor.
func CPUBrand() string {
	return cpuid.CPU.BrandName
}
