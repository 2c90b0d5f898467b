package repair

// maxTypoDistance bounds how far a misspelling may be from the keyword it is
// corrected to. Two covers every transposition and the common drop/double
// mistakes (whiel, iff, itn, fo) without swallowing short identifiers.
const maxTypoDistance = 2

// editDistance is plain Levenshtein over bytes. Inputs are short (keyword
// sized), so the two-row formulation is plenty.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// closestKeyword returns the unique candidate within maxTypoDistance of
// lexeme, if there is exactly one at the minimal distance. A lexeme that is
// itself a candidate, or that ties between two candidates, matches nothing.
func closestKeyword(lexeme string, candidates []string) (string, bool) {
	best := ""
	bestDist := maxTypoDistance + 1
	tie := false
	for _, kw := range candidates {
		d := editDistance(lexeme, kw)
		switch {
		case d < bestDist:
			best, bestDist, tie = kw, d, false
		case d == bestDist:
			tie = true
		}
	}
	if bestDist == 0 || bestDist > maxTypoDistance || tie {
		return "", false
	}
	return best, true
}
