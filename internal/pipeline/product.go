package pipeline

import "iter"

// Product yields the Cartesian product of lists, first list outermost and
// the last one varying fastest. An empty input yields a single empty
// combination; any empty list yields nothing.
//
// The yielded slice is reused between iterations.
func Product(lists [][]string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for _, list := range lists {
			if len(list) == 0 {
				return
			}
		}

		idx := make([]int, len(lists))
		combo := make([]string, len(lists))
		for {
			for i, list := range lists {
				combo[i] = list[idx[i]]
			}
			if !yield(combo) {
				return
			}

			k := len(lists) - 1
			for ; k >= 0; k-- {
				idx[k]++
				if idx[k] < len(lists[k]) {
					break
				}
				idx[k] = 0
			}
			if k < 0 {
				return
			}
		}
	}
}
