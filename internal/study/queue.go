package study

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/at-ishikawa/vocato/internal/word"
)

// queueOrder puts the hardest words first and breaks ties by age, oldest first.
var queueOrder = []word.SortKey{
	{Column: word.ColumnImportanceCount, Desc: true},
	{Column: word.ColumnCreatedAt},
}

func queueQuery(settings Settings, now time.Time) word.Query {
	limit := 0
	if settings.QuestionCount > 0 {
		limit = settings.QuestionCount
	}
	return word.Query{
		Filter: word.Filter{
			Group:            settings.WordGroup,
			IncludeFavorites: settings.IncludeFavorites,
			DueBy:            &now,
		},
		Sort:  queueOrder,
		Limit: limit,
	}
}

// BuildQueue selects the words due at now that match the settings, in study order.
// The words themselves are not modified.
func BuildQueue(words []*word.Word, settings Settings, now time.Time) []*word.Word {
	return queueQuery(settings, now).Apply(words)
}

// QueueBuilder builds queues from a word store.
type QueueBuilder struct {
	store word.Store
	clock clockwork.Clock
}

func NewQueueBuilder(store word.Store, clock clockwork.Clock) *QueueBuilder {
	return &QueueBuilder{store: store, clock: clock}
}

// Build fetches candidates from the store and orders them.
// A failing store yields an empty queue, which callers treat as nothing to study.
func (b *QueueBuilder) Build(ctx context.Context, settings Settings) []*word.Word {
	now := b.clock.Now()
	query := queueQuery(settings, now)
	words, err := b.store.Fetch(ctx, query)
	if err != nil {
		slog.Default().Warn("failed to fetch words for the study queue",
			slog.String("group", string(settings.WordGroup)),
			slog.Any("error", err),
		)
		return []*word.Word{}
	}
	return query.Apply(words)
}
