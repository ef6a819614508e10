package word

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Group selects words by their learning state.
type Group string

const (
	GroupAll       Group = "all"
	GroupNew       Group = "new"
	GroupLearning  Group = "learning"
	GroupReviewing Group = "reviewing"
	GroupMastered  Group = "mastered"
	GroupFavorites Group = "favorites"
	GroupDifficult Group = "difficult"
)

// Groups lists every group in display order.
var Groups = []Group{
	GroupAll,
	GroupNew,
	GroupLearning,
	GroupReviewing,
	GroupMastered,
	GroupFavorites,
	GroupDifficult,
}

// ParseGroup converts a name into a Group. An empty name means GroupAll.
func ParseGroup(name string) (Group, error) {
	if name == "" {
		return GroupAll, nil
	}
	for _, g := range Groups {
		if string(g) == strings.ToLower(name) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown word group %q", name)
}

// Contains reports whether w is a member of the group.
func (g Group) Contains(w *Word) bool {
	switch g {
	case GroupNew:
		return w.SRSStage == 0
	case GroupLearning:
		return w.SRSStage == 1
	case GroupReviewing:
		return w.SRSStage == 2
	case GroupMastered:
		return w.IsMastered
	case GroupFavorites:
		return w.IsFavorite
	case GroupDifficult:
		return w.ImportanceCount > 0
	default:
		return true
	}
}

// Filter is a conjunction of conditions on words.
// Stores translate it into their own query language; Match is the reference semantics.
type Filter struct {
	Group Group
	// IncludeFavorites widens Group to also accept favorites.
	IncludeFavorites bool
	// DueBy keeps only words without a review date or due at or before it.
	DueBy  *time.Time
	IDs    []string
	Search string
}

// Match reports whether w satisfies every condition of the filter.
func (f Filter) Match(w *Word) bool {
	if !f.matchGroup(w) {
		return false
	}
	if f.DueBy != nil && !w.IsDue(*f.DueBy) {
		return false
	}
	if len(f.IDs) > 0 && !containsID(f.IDs, w.ID) {
		return false
	}
	if f.Search != "" {
		search := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(w.Term), search) &&
			!strings.Contains(strings.ToLower(w.Meaning), search) {
			return false
		}
	}
	return true
}

func (f Filter) matchGroup(w *Word) bool {
	if f.Group.Contains(w) {
		return true
	}
	return f.widensToFavorites() && w.IsFavorite
}

func (f Filter) widensToFavorites() bool {
	return f.IncludeFavorites && f.Group != GroupFavorites
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// Sortable columns.
const (
	ColumnImportanceCount = "importance_count"
	ColumnCreatedAt       = "created_at"
	ColumnNextReviewDate  = "next_review_date"
	ColumnTerm            = "term"
)

// SortKey orders words by one column.
type SortKey struct {
	Column string
	Desc   bool
}

// Query describes a fetch: which words, in which order, and how many (0 means no limit).
type Query struct {
	Filter Filter
	Sort   []SortKey
	Limit  int
}

// Apply evaluates the query against an in-memory slice.
func (q Query) Apply(words []*Word) []*Word {
	result := make([]*Word, 0, len(words))
	for _, w := range words {
		if q.Filter.Match(w) {
			result = append(result, w)
		}
	}
	SortWords(result, q.Sort)
	if q.Limit > 0 && q.Limit < len(result) {
		result = result[:q.Limit]
	}
	return result
}

// SortWords sorts words in place by the keys, keeping the input order for ties.
func SortWords(words []*Word, keys []SortKey) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(words, func(i, j int) bool {
		for _, key := range keys {
			c := compare(words[i], words[j], key.Column)
			if c == 0 {
				continue
			}
			if key.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compare(a, b *Word, column string) int {
	switch column {
	case ColumnImportanceCount:
		return a.ImportanceCount - b.ImportanceCount
	case ColumnCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case ColumnNextReviewDate:
		return compareOptionalTime(a.NextReviewDate, b.NextReviewDate)
	case ColumnTerm:
		return strings.Compare(a.Term, b.Term)
	default:
		return 0
	}
}

// compareOptionalTime orders missing dates first, as SQL does for NULLs in ascending order.
func compareOptionalTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}
