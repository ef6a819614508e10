package word

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Input carries the user-editable fields of a word.
type Input struct {
	Term     string `validate:"required,max=200"`
	Meaning  string `validate:"required,max=500"`
	Memo     string `validate:"max=2000"`
	Synonyms string `validate:"max=500"`
}

func (in Input) normalized() Input {
	return Input{
		Term:     strings.TrimSpace(in.Term),
		Meaning:  strings.TrimSpace(in.Meaning),
		Memo:     strings.TrimSpace(in.Memo),
		Synonyms: strings.TrimSpace(in.Synonyms),
	}
}

// Service validates user input and manages words in a Store.
// Invalid input never reaches the study engine: it is rejected here.
type Service struct {
	store    Store
	clock    clockwork.Clock
	validate *validator.Validate
	newID    func() string
}

// NewService creates a new Service.
func NewService(store Store, clock clockwork.Clock) *Service {
	return &Service{
		store:    store,
		clock:    clock,
		validate: validator.New(),
		newID:    uuid.NewString,
	}
}

func (s *Service) validateInput(in Input) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWord, err)
	}
	return nil
}

// Add creates a new word at stage 0, due immediately.
func (s *Service) Add(ctx context.Context, in Input) (*Word, error) {
	in = in.normalized()
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	w := &Word{
		ID:        s.newID(),
		Term:      in.Term,
		Meaning:   in.Meaning,
		Memo:      in.Memo,
		Synonyms:  in.Synonyms,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.Save(ctx, w); err != nil {
		return nil, fmt.Errorf("store.Save() > %w", err)
	}
	return w, nil
}

// Update replaces the editable fields of an existing word.
func (s *Service) Update(ctx context.Context, id string, in Input) (*Word, error) {
	in = in.normalized()
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	w.Term = in.Term
	w.Meaning = in.Meaning
	w.Memo = in.Memo
	w.Synonyms = in.Synonyms
	if err := s.store.Save(ctx, w); err != nil {
		return nil, fmt.Errorf("store.Save() > %w", err)
	}
	return w, nil
}

// Get returns the word with the id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Word, error) {
	words, err := s.store.Fetch(ctx, Query{Filter: Filter{IDs: []string{id}}, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("store.Fetch() > %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word %s: %w", id, ErrNotFound)
	}
	return words[0], nil
}

// List returns words matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Word, error) {
	words, err := s.store.Fetch(ctx, Query{
		Filter: filter,
		Sort:   []SortKey{{Column: ColumnCreatedAt, Desc: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("store.Fetch() > %w", err)
	}
	return words, nil
}

// Delete removes the word with the id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("store.Delete() > %w", err)
	}
	return nil
}

// ToggleFavorite flips the favorite flag of a word.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (*Word, error) {
	return s.mutate(ctx, id, func(w *Word) { w.IsFavorite = !w.IsFavorite })
}

// ToggleMastered flips the mastered flag of a word.
func (s *Service) ToggleMastered(ctx context.Context, id string) (*Word, error) {
	return s.mutate(ctx, id, func(w *Word) { w.IsMastered = !w.IsMastered })
}

func (s *Service) mutate(ctx context.Context, id string, fn func(w *Word)) (*Word, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(w)
	if err := s.store.Save(ctx, w); err != nil {
		return nil, fmt.Errorf("store.Save() > %w", err)
	}
	return w, nil
}
