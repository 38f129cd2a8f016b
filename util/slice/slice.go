package slice

// DifferenceRemovedAdded returns the elements of a missing in b and the
// elements of b missing in a, in their original order.
func DifferenceRemovedAdded[T comparable](a, b []T) (removed []T, added []T) {
	var amap = map[T]struct{}{}
	var bmap = map[T]struct{}{}

	for _, item := range a {
		amap[item] = struct{}{}
	}

	for _, item := range b {
		if _, exists := amap[item]; !exists {
			added = append(added, item)
		}
		bmap[item] = struct{}{}
	}

	for _, item := range a {
		if _, exists := bmap[item]; !exists {
			removed = append(removed, item)
		}
	}
	return
}

func Filter[T any](vals []T, cond func(T) bool) []T {
	var result = make([]T, 0, len(vals))
	for i := range vals {
		if cond(vals[i]) {
			result = append(result, vals[i])
		}
	}
	return result
}

// Dedup keeps the first occurrence of every key.
func Dedup[T any, K comparable](vals []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(vals))
	return Filter(vals, func(v T) bool {
		k := key(v)
		if _, ok := seen[k]; ok {
			return false
		}
		seen[k] = struct{}{}
		return true
	})
}
