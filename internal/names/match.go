package names

// Match resolves target against a list of polygon names in document order.
// Tier 1 compares normalized forms for equality; only if no name matches
// does tier 2 compare case-folded normalized forms. Returns the index of
// the first match within the winning tier, or -1.
//
// Matching is deliberately not typo-tolerant: substring or edit-distance
// matching risks false positives between adjacent sector names.
func Match(target string, candidates []string) int {
	want := Normalize(target)

	for i, c := range candidates {
		if Normalize(c) == want {
			return i
		}
	}

	wantFolded := Fold(target)
	for i, c := range candidates {
		if Fold(c) == wantFolded {
			return i
		}
	}

	return -1
}
