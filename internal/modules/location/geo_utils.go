// README: Helpers for ranking places by distance.
package location

// sortByDistance performs an insertion sort (fine for small N) on any slice
// where each element exposes a distance via the accessor function. Equal
// distances keep their input order.
func sortByDistance[T any](items []T, dist func(T) float64) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && dist(items[j]) > dist(key) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}
