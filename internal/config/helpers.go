package config

import (
	"sort"

	"github.com/samber/lo"
)

// sortedMapKeys returns the keys of a map, sorted
func sortedMapKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
