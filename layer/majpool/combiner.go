package majpool

// Put sets the n-th input. Distinct positions may be put concurrently.
func (s *MajPool) Put(n int, v bool) {
	s.vec[n] = v
}

// votes counts set minus unset inputs in group g, skipping position skip
func (s *MajPool) votes(g, skip int) (w int) {
	for n := g * s.width; n < (g+1)*s.width; n++ {
		if n == skip {
			continue
		}
		if s.vec[n] {
			w++
		} else {
			w--
		}
	}
	return
}

// Feature returns 1 when strictly more than half of group m is set.
func (s *MajPool) Feature(m int) (o uint32) {
	if m < 0 || m >= s.groups {
		return 0
	}
	if s.votes(m, -1) > 0 {
		return 1
	}
	return 0
}

// Disregard tells whether the input at position n can't flip its group's majority.
func (s *MajPool) Disregard(n int) bool {
	w := s.votes(n/s.width, n)
	// with value true the group sums to w+1, with false to w-1
	return (w+1 > 0) == (w-1 > 0)
}
