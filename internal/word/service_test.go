package word_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_word "github.com/at-ishikawa/vocato/internal/mocks/word"
	"github.com/at-ishikawa/vocato/internal/word"
)

func TestService_Add(t *testing.T) {
	now := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

	tests := []struct {
		name      string
		input     word.Input
		setupMock func(store *mock_word.MockStore)
		wantErr   error
		want      *word.Word
	}{
		{
			name:  "trims and saves a new word",
			input: word.Input{Term: "  apple ", Meaning: "ringo\n", Memo: " fruit "},
			setupMock: func(store *mock_word.MockStore) {
				store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: &word.Word{Term: "apple", Meaning: "ringo", Memo: "fruit", CreatedAt: now},
		},
		{
			name:      "rejects empty term",
			input:     word.Input{Term: "   ", Meaning: "ringo"},
			setupMock: func(store *mock_word.MockStore) {},
			wantErr:   word.ErrInvalidWord,
		},
		{
			name:      "rejects empty meaning",
			input:     word.Input{Term: "apple"},
			setupMock: func(store *mock_word.MockStore) {},
			wantErr:   word.ErrInvalidWord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mock_word.NewMockStore(ctrl)
			tt.setupMock(store)

			service := word.NewService(store, clockwork.NewFakeClockAt(now))
			got, err := service.Add(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.want.Term, got.Term)
			assert.Equal(t, tt.want.Meaning, got.Meaning)
			assert.Equal(t, tt.want.Memo, got.Memo)
			assert.Equal(t, tt.want.CreatedAt, got.CreatedAt)
			assert.Equal(t, 0, got.SRSStage)
			assert.Nil(t, got.NextReviewDate)
		})
	}
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_word.NewMockStore(ctrl)
	store.EXPECT().
		Fetch(gomock.Any(), word.Query{Filter: word.Filter{IDs: []string{"missing"}}, Limit: 1}).
		Return(nil, nil)

	service := word.NewService(store, clockwork.NewFakeClock())
	_, err := service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, word.ErrNotFound)
}

func TestService_ToggleFavorite(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_word.NewMockStore(ctrl)

	existing := &word.Word{ID: "w1", Term: "apple", Meaning: "ringo"}
	store.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return([]*word.Word{existing}, nil)
	store.EXPECT().Save(gomock.Any(), existing).Return(nil)

	service := word.NewService(store, clockwork.NewFakeClock())
	got, err := service.ToggleFavorite(context.Background(), "w1")
	require.NoError(t, err)
	assert.True(t, got.IsFavorite)
}

func TestService_Update_SaveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_word.NewMockStore(ctrl)

	existing := &word.Word{ID: "w1", Term: "apple", Meaning: "ringo"}
	store.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return([]*word.Word{existing}, nil)
	store.EXPECT().Save(gomock.Any(), existing).Return(errors.New("disk full"))

	service := word.NewService(store, clockwork.NewFakeClock())
	_, err := service.Update(context.Background(), "w1", word.Input{Term: "apple", Meaning: "manzana"})
	assert.ErrorContains(t, err, "disk full")
}
