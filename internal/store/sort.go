package store

import (
	"sort"

	"github.com/julianstephens/aidant/internal/utils"
)

func sortBy[T any](items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool { return key(items[i]) < key(items[j]) })
}

func sortByDesc[T any](items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool { return key(items[i]) > key(items[j]) })
}

// timeKey pads stored H:MM values so that they compare as strings.
// Values that do not parse are returned unchanged.
func timeKey(s string) string {
	if n, err := utils.NormalizeTime(s); err == nil {
		return n
	}
	return s
}
