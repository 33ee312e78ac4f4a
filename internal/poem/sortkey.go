package poem

import (
	"sort"
	"strconv"
	"strings"

	"versebook/internal/util"
)

// NoKey is the sort key of a stem without a numeric prefix. It is lower
// than every parsed key, 0 included, so "intro" sorts before "00_intro".
const NoKey = -1

// SortKey derives the ordering key of a filename stem from its leading
// numeric prefix ("12_title" has key 12).
func SortKey(stem string) int {
	prefix, _, found := strings.Cut(stem, util.NameSeparator)
	if !found || prefix == "" {
		return NoKey
	}
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return NoKey
		}
	}
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return NoKey
	}
	return n
}

// SortStems orders stems by SortKey. Equal keys keep their input order.
func SortStems(stems []string) {
	sort.SliceStable(stems, func(i, j int) bool {
		return SortKey(stems[i]) < SortKey(stems[j])
	})
}

// SortPoems orders poems by the SortKey of their stems, stably.
func SortPoems(poems []Poem) {
	sort.SliceStable(poems, func(i, j int) bool {
		return SortKey(poems[i].Stem) < SortKey(poems[j].Stem)
	})
}
