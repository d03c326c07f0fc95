package sotest_go

// EditDistance returns the Levenshtein distance between s1 and s2. When
// allowReplacements is false only insertions and deletions count. A non-zero
// maxEditDistance lets the search stop early; the result is then
// maxEditDistance+1 for anything farther away.
func EditDistance(s1 string, s2 string, allowReplacements bool, maxEditDistance int) int {
	m := len(s1)
	n := len(s2)

	row := make([]int, n+1)
	for i := 1; i <= n; i++ {
		row[i] = i
	}

	for y := 1; y <= m; y++ {
		row[0] = y
		bestThisRow := row[0]

		previous := y - 1
		for x := 1; x <= n; x++ {
			oldRow := row[x]
			if allowReplacements {
				if s1[y-1] == s2[x-1] {
					row[x] = previous
				} else {
					row[x] = min(previous, min(row[x-1], row[x])) + 1
				}
			} else {
				if s1[y-1] == s2[x-1] {
					row[x] = previous
				} else {
					row[x] = min(row[x-1], row[x]) + 1
				}
			}
			previous = oldRow
			bestThisRow = min(bestThisRow, row[x])
		}

		if maxEditDistance != 0 && bestThisRow > maxEditDistance {
			return maxEditDistance + 1
		}
	}

	return row[n]
}

// SpellcheckString returns the closest of words to text, or "" when none is
// within a small edit distance.
func SpellcheckString(text string, words ...string) string {
	const kAllowReplacements = true
	const kMaxValidEditDistance = 2

	min_distance := kMaxValidEditDistance + 1
	result := ""
	for _, word := range words {
		distance := EditDistance(word, text, kAllowReplacements, kMaxValidEditDistance)
		if distance < min_distance {
			min_distance = distance
			result = word
		}
	}
	return result
}
