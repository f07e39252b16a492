package quiz

import (
	"math/rand"
	"time"
)

// Reorder produces a traversal order over n filtered questions: the
// ascending identity order, permuted in place when shuffled. The result
// always has length n.
func Reorder(n int, shuffled bool, rng *rand.Rand) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if shuffled {
		Shuffle(order, rng)
	}
	return order
}

// Shuffle permutes order in place with an unbiased Fisher-Yates walk,
// iterating from the last index down and swapping with a uniformly chosen
// earlier-or-equal index. A nil rng falls back to a time-seeded source.
func Shuffle(order []int, rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	for i := len(order) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
}
