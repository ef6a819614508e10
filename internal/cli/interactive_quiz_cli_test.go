package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_cli "github.com/at-ishikawa/vocato/internal/mocks/cli"
	mock_word "github.com/at-ishikawa/vocato/internal/mocks/word"
	"github.com/at-ishikawa/vocato/internal/progress"
	"github.com/at-ishikawa/vocato/internal/study"
	"github.com/at-ishikawa/vocato/internal/word"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type recordingNarrator struct {
	mu     sync.Mutex
	spoken []string
}

func (n *recordingNarrator) SpeakTerm(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.spoken = append(n.spoken, "term:"+text)
}

func (n *recordingNarrator) SpeakMeaning(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.spoken = append(n.spoken, "meaning:"+text)
}

func (n *recordingNarrator) Spoken() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.spoken...)
}

type quizFixture struct {
	base     *InteractiveQuizCLI
	session  *study.Session
	store    *mock_word.MockStore
	progress *progress.FileStore
	clock    *clockwork.FakeClock
	narrator *recordingNarrator
	out      *bytes.Buffer
}

// newQuizFixture builds a quiz over words backed by a mocked word store and a real state file.
func newQuizFixture(t *testing.T, words []*word.Word, settings study.Settings, stdin io.Reader) *quizFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mock_word.NewMockStore(ctrl)
	store.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(words, nil).AnyTimes()
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	fileStore := progress.NewFileStore(filepath.Join(t.TempDir(), "state.yml"))
	clock := clockwork.NewFakeClockAt(testNow)
	session, err := study.NewSession(context.Background(), store, fileStore, clock, settings)
	require.NoError(t, err)

	narrator := &recordingNarrator{}
	out := &bytes.Buffer{}
	return &quizFixture{
		base:     NewInteractiveQuizCLI(session, progress.NewTracker(fileStore, clock), narrator, stdin, out),
		session:  session,
		store:    store,
		progress: fileStore,
		clock:    clock,
		narrator: narrator,
		out:      out,
	}
}

func testWords() []*word.Word {
	return []*word.Word{
		{ID: "w1", Term: "apple", Meaning: "사과", Memo: "fruit", CreatedAt: testNow.Add(-2 * time.Hour)},
		{ID: "w2", Term: "banana", Meaning: "바나나", CreatedAt: testNow.Add(-1 * time.Hour)},
	}
}

func TestInteractiveQuizCLI_Run(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(*mock_cli.MockSession)
		cancelAfter time.Duration
		wantErr     bool
	}{
		{
			name: "Session returns error",
			setupMock: func(mockSession *mock_cli.MockSession) {
				mockSession.EXPECT().
					Session(gomock.Any()).
					Return(errors.New("mock session error")).
					Times(1)
			},
			wantErr: true,
		},
		{
			name: "Session ends",
			setupMock: func(mockSession *mock_cli.MockSession) {
				gomock.InOrder(
					mockSession.EXPECT().Session(gomock.Any()).Return(nil),
					mockSession.EXPECT().Session(gomock.Any()).Return(errEnd),
				)
			},
			wantErr: false,
		},
		{
			name: "Context cancelled before first session",
			setupMock: func(mockSession *mock_cli.MockSession) {
				// May or may not be called depending on timing
				mockSession.EXPECT().
					Session(gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			cancelAfter: 1 * time.Millisecond,
			wantErr:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSession := mock_cli.NewMockSession(ctrl)
			tt.setupMock(mockSession)

			fixture := newQuizFixture(t, nil, study.DefaultSettings(), strings.NewReader(""))

			ctx := context.Background()
			if tt.cancelAfter > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, tt.cancelAfter)
				defer cancel()
			}

			err := fixture.base.Run(ctx, mockSession)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("records the study time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fixture := newQuizFixture(t, nil, study.DefaultSettings(), strings.NewReader(""))

		mockSession := mock_cli.NewMockSession(ctrl)
		mockSession.EXPECT().
			Session(gomock.Any()).
			DoAndReturn(func(ctx context.Context) error {
				fixture.clock.Advance(90 * time.Second)
				return errEnd
			})

		require.NoError(t, fixture.base.Run(context.Background(), mockSession))

		seconds, err := fixture.progress.StudySeconds(context.Background(), testNow)
		require.NoError(t, err)
		assert.Equal(t, 90, seconds)
	})
}

func TestInteractiveQuizCLI_handleCommand(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantHandled bool
		wantErr     error
		check       func(t *testing.T, fixture *quizFixture, w *word.Word)
	}{
		{
			name:        "answer is not a command",
			input:       "사과",
			wantHandled: false,
		},
		{
			name:        "i raises importance",
			input:       "i",
			wantHandled: true,
			check: func(t *testing.T, _ *quizFixture, w *word.Word) {
				assert.Equal(t, 1, w.ImportanceCount)
			},
		},
		{
			name:        "d never goes below zero",
			input:       "D",
			wantHandled: true,
			check: func(t *testing.T, _ *quizFixture, w *word.Word) {
				assert.Equal(t, 0, w.ImportanceCount)
			},
		},
		{
			name:        "f toggles favorite",
			input:       "f",
			wantHandled: true,
			check: func(t *testing.T, _ *quizFixture, w *word.Word) {
				assert.True(t, w.IsFavorite)
			},
		},
		{
			name:        "m toggles mastered",
			input:       "m",
			wantHandled: true,
			check: func(t *testing.T, _ *quizFixture, w *word.Word) {
				assert.True(t, w.IsMastered)
			},
		},
		{
			name:        "quit ends without saving",
			input:       "quit",
			wantHandled: true,
			wantErr:     errEnd,
			check: func(t *testing.T, fixture *quizFixture, _ *word.Word) {
				snapshot, err := fixture.progress.LoadSnapshot(context.Background())
				require.NoError(t, err)
				assert.Nil(t, snapshot)
			},
		},
		{
			name:        "pause saves the progress and ends",
			input:       "pause",
			wantHandled: true,
			wantErr:     errEnd,
			check: func(t *testing.T, fixture *quizFixture, _ *word.Word) {
				snapshot, err := fixture.progress.LoadSnapshot(context.Background())
				require.NoError(t, err)
				require.NotNil(t, snapshot)
				assert.Equal(t, []string{"w1", "w2"}, snapshot.WordIDs)
				assert.Equal(t, study.StatePaused, fixture.session.State())
				assert.True(t, fixture.session.HasUnfinishedSession())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newQuizFixture(t, testWords(), study.DefaultSettings(), strings.NewReader(""))
			w := fixture.session.Current()
			require.NotNil(t, w)

			handled, err := fixture.base.handleCommand(context.Background(), tt.input, w)
			assert.Equal(t, tt.wantHandled, handled)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if tt.check != nil {
				tt.check(t, fixture, w)
			}
		})
	}
}
