package overlay

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPow2 returns the smallest power of two greater than or equal to n.
// Powers of two map to themselves; NextPow2(1) is 1. Inputs below 1 are
// treated as 1 so a degenerate image dimension still yields a valid
// texture size.
func NextPow2(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
