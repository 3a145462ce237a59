// Package rotate implements in-place rotation of adjacent sub-ranges by
// three reversals: O(n) time, O(1) extra space.
package rotate

import "slices"

// Rotate exchanges s[first:middle] and s[middle:last] in place so that the
// element at middle ends up at first. Relative order inside each part is
// kept. It returns the new index of the element that was at first.
//
// Indices must satisfy 0 <= first <= middle <= last <= len(s); violations
// panic with the usual slice bounds error.
func Rotate[S ~[]E, E any](s S, first, middle, last int) int {
	w := s[first:last:last]
	k := middle - first
	if k == 0 || k == len(w) {
		return first + len(w) - k
	}
	slices.Reverse(w[:k])
	slices.Reverse(w[k:])
	slices.Reverse(w)
	return first + len(w) - k
}

// Left rotates the whole of s left by k positions; k may be negative or
// larger than len(s).
func Left[S ~[]E, E any](s S, k int) {
	n := len(s)
	if n == 0 {
		return
	}
	k %= n
	if k < 0 {
		k += n
	}
	Rotate(s, 0, k, n)
}

// Right rotates the whole of s right by k positions.
func Right[S ~[]E, E any](s S, k int) {
	Left(s, -k)
}
