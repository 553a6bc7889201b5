package game

import (
	"fmt"
	"math/rand"
)

// Round is one puzzle: a single pool item promoted to a game round. Rounds
// are immutable once selected.
type Round struct {
	Image  string
	Accept []string
	Hint   string
}

// ErrInsufficientPool is returned when the pool cannot supply enough rounds
// even after all relaxation passes.
type ErrInsufficientPool struct {
	Got  int
	Need int
}

func (e *ErrInsufficientPool) Error() string {
	return fmt.Sprintf("only got %d images, need at least %d", e.Got, e.Need)
}

// SelectRounds picks n rounds from the pool using randomized multi-pass
// relaxation. Pass 1 requires unique images, unique titles, and no titles
// from the previous game. Pass 2 readmits previous-game titles. Pass 3
// allows up to two rounds per title. Each pass walks the same uniformly
// shuffled order, so ties are broken at random rather than by fetch order.
// A final greedy rearrangement keeps same-title rounds from landing
// back to back wherever that is possible.
func SelectRounds(pool []PoolItem, avoidTitles []string, n int, rng *rand.Rand) ([]Round, error) {
	if len(pool) < n {
		return nil, &ErrInsufficientPool{Got: len(pool), Need: n}
	}

	shuffled := make([]PoolItem, len(pool))
	copy(shuffled, pool)
	// Fisher-Yates (Durstenfeld) shuffle.
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	avoid := make(map[string]bool, len(avoidTitles))
	for _, t := range avoidTitles {
		avoid[t] = true
	}

	picked := make([]PoolItem, 0, n)
	usedImages := make(map[string]bool)
	titleCount := make(map[string]int)

	accept := func(item PoolItem) {
		picked = append(picked, item)
		usedImages[item.Image] = true
		titleCount[item.Hint]++
	}

	// Pass 1: strict.
	for _, item := range shuffled {
		if len(picked) >= n {
			break
		}
		if usedImages[item.Image] || titleCount[item.Hint] > 0 || avoid[item.Hint] {
			continue
		}
		accept(item)
	}

	// Pass 2: allow titles from the previous game.
	if len(picked) < n {
		for _, item := range shuffled {
			if len(picked) >= n {
				break
			}
			if usedImages[item.Image] || titleCount[item.Hint] > 0 {
				continue
			}
			accept(item)
		}
	}

	// Pass 3: allow up to two rounds per title.
	if len(picked) < n {
		for _, item := range shuffled {
			if len(picked) >= n {
				break
			}
			if usedImages[item.Image] || titleCount[item.Hint] >= 2 {
				continue
			}
			accept(item)
		}
	}

	if len(picked) < n {
		return nil, &ErrInsufficientPool{Got: len(picked), Need: n}
	}

	return arrange(picked), nil
}

// arrange orders the picked items so no two adjacent rounds share a title,
// falling back to a forced repeat only when every remaining item carries
// the same title as the last placed one.
func arrange(picked []PoolItem) []Round {
	remaining := make([]PoolItem, len(picked))
	copy(remaining, picked)

	rounds := make([]Round, 0, len(picked))
	lastTitle := ""
	for len(remaining) > 0 {
		idx := 0
		for i, item := range remaining {
			if item.Hint != lastTitle {
				idx = i
				break
			}
		}
		item := remaining[idx]
		rounds = append(rounds, Round{Image: item.Image, Accept: item.Accept, Hint: item.Hint})
		lastTitle = item.Hint
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	return rounds
}
