package memory

import (
	"cmp"
	"slices"
)

// sortByCreated gives map-backed lists a stable order.
func sortByCreated[T any](items []T, key func(T) (int64, string)) {
	slices.SortFunc(items, func(a, b T) int {
		ta, ia := key(a)
		tb, ib := key(b)
		if c := cmp.Compare(ta, tb); c != 0 {
			return c
		}
		return cmp.Compare(ia, ib)
	})
}
