package study

import (
	"context"
	"log/slog"
	"math/rand"
	"slices"
	"sync"

	"github.com/at-ishikawa/vocato/internal/word"
)

const (
	// PoolScanLimit bounds how many pool entries are considered as distractors.
	PoolScanLimit      = 50
	DefaultOptionCount = 4
)

// Sampler picks multiple-choice options. Its randomness comes from the injected source.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Options returns up to count distinct meanings in random order, including the correct one when it is not empty.
// A small pool yields fewer options.
func (s *Sampler) Options(correct *word.Word, pool []*word.Word, count int) []string {
	if count <= 0 {
		count = DefaultOptionCount
	}

	options := make([]string, 0, count)
	var correctID string
	if correct != nil {
		correctID = correct.ID
		if correct.Meaning != "" {
			options = append(options, correct.Meaning)
		}
	}

	if len(pool) > PoolScanLimit {
		pool = pool[:PoolScanLimit]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, i := range s.rng.Perm(len(pool)) {
		if len(options) >= count {
			break
		}
		candidate := pool[i]
		if candidate == nil || candidate.ID == correctID {
			continue
		}
		if candidate.Meaning == "" || slices.Contains(options, candidate.Meaning) {
			continue
		}
		options = append(options, candidate.Meaning)
	}

	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// LoadPool fetches candidate distractors. A failing store yields an empty pool.
func (s *Sampler) LoadPool(ctx context.Context, store word.Store) []*word.Word {
	words, err := store.Fetch(ctx, word.Query{Limit: PoolScanLimit})
	if err != nil {
		slog.Default().Warn("failed to fetch distractor candidates", slog.Any("error", err))
		return []*word.Word{}
	}
	return words
}
