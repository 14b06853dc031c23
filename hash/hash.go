// Package hash implements the fast modular hash used by the castanet hashtrons
package hash

// Hash mixes n with the salt s and reduces the result into the range [0, max).
func Hash(n uint32, s uint32, max uint32) uint32 {
	// mix input with salt using subtraction
	var m = n - s

	// xor shift with prime coefficients
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	// mix input with salt using addition
	m += s

	// Lemire's multiply shift instead of a modulo
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// StringHash folds the bytes of str into a single salted 32bit value
func StringHash(salt uint32, str string) uint32 {
	var h = Hash(uint32(len(str)), salt, 0xFFFFFFFF)
	for i := 0; i < len(str); i++ {
		h = Hash(h^uint32(str[i]), salt, 0xFFFFFFFF)
	}
	return h
}
