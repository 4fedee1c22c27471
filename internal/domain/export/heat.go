package export

import (
	"strings"
	"unicode"
)

// SplitHeat splits a race name such as "101A" into its event ("101") and the
// 1-based heat number of its first letter (A=1). Names without a letter, or
// whose first letter is outside a-z, have heat 0. Only the first letter is
// used, so "12AB" is heat 1.
func SplitHeat(name string) (event string, heat int) {
	var b strings.Builder
	var first rune
	for _, r := range name {
		if unicode.IsLetter(r) {
			if first == 0 {
				first = r
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), heatNumber(first)
}

func heatNumber(r rune) int {
	r = unicode.ToLower(r)
	if r < 'a' || r > 'z' {
		return 0
	}
	return int(r-'a') + 1
}
