// Package sequence orders races the way the timing system expects them.
package sequence

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
)

// Compare orders races by the number their name starts with, then by name.
// A name without a leading number, or one too large to parse, counts as 0.
func Compare(a, b model.Race) int {
	if c := cmp.Compare(leadingNumber(a.Name), leadingNumber(b.Name)); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// Sort orders races in place. Races that compare equal keep their relative order.
func Sort(races []model.Race) {
	slices.SortStableFunc(races, Compare)
}

func leadingNumber(name string) int {
	end := 0
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	n, err := strconv.ParseInt(name[:end], 10, 32)
	if err != nil {
		return 0
	}
	return int(n)
}
