package interpret

// similarityRatio computes a Ratcliff/Obershelp sequence similarity in
// [0, 1]: twice the total length of matching blocks divided by the
// combined length of both strings. This is only invoked for unmatched
// token windows of at most four tokens, so the quadratic matching cost
// stays bounded.
func similarityRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	matched := matchingBlockTotal([]rune(a), []rune(b))
	return 2.0 * float64(matched) / float64(len([]rune(a))+len([]rune(b)))
}

// matchingBlockTotal finds the longest common substring, then recurses
// into the unmatched pieces on either side.
func matchingBlockTotal(a, b []rune) int {
	aStart, bStart, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingBlockTotal(a[:aStart], b[:bStart])
	total += matchingBlockTotal(a[aStart+size:], b[bStart+size:])
	return total
}

func longestCommonBlock(a, b []rune) (aStart, bStart, size int) {
	// lengths[j] is the length of the common suffix ending at a[i-1], b[j-1]
	// for the current row i.
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prevDiagonal := 0
		for j := 1; j <= len(b); j++ {
			tmp := lengths[j]
			if a[i-1] == b[j-1] {
				lengths[j] = prevDiagonal + 1
				if lengths[j] > size {
					size = lengths[j]
					aStart = i - size
					bStart = j - size
				}
			} else {
				lengths[j] = 0
			}
			prevDiagonal = tmp
		}
	}
	return aStart, bStart, size
}
