package cli

import (
	"context"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/vocato/internal/study"
	"github.com/at-ishikawa/vocato/internal/word"
)

func TestMultipleChoiceQuiz_Session(t *testing.T) {
	const seed = 42

	// Only apple is due; the others serve as distractors.
	newWords := func() []*word.Word {
		later := testNow.Add(48 * time.Hour)
		return []*word.Word{
			{ID: "w1", Term: "apple", Meaning: "사과", CreatedAt: testNow.Add(-3 * time.Hour)},
			{ID: "w2", Term: "banana", Meaning: "바나나", NextReviewDate: &later, CreatedAt: testNow.Add(-2 * time.Hour)},
			{ID: "w3", Term: "cherry", Meaning: "체리", NextReviewDate: &later, CreatedAt: testNow.Add(-1 * time.Hour)},
		}
	}
	// The quiz draws the same options as a sampler seeded the same way.
	expectedOptions := func(words []*word.Word) []string {
		return study.NewSampler(rand.New(rand.NewSource(seed))).Options(words[0], words, study.DefaultOptionCount)
	}
	choiceOf := func(options []string, meaning string) string {
		return strconv.Itoa(slices.Index(options, meaning) + 1)
	}

	tests := []struct {
		name        string
		input       func(options []string) string
		wantOutputs []string
		check       func(t *testing.T, w *word.Word)
	}{
		{
			name: "correct choice",
			input: func(options []string) string {
				return choiceOf(options, "사과") + "\n"
			},
			wantOutputs: []string{"It's correct.", "All done!"},
			check: func(t *testing.T, w *word.Word) {
				assert.Equal(t, 1, w.CorrectCount)
				assert.Equal(t, 1, w.SRSStage)
				assert.Equal(t, 1, w.AccuracyCount)
			},
		},
		{
			name: "distractor chosen",
			input: func(options []string) string {
				return choiceOf(options, "체리") + "\n"
			},
			wantOutputs: []string{"It's wrong."},
			check: func(t *testing.T, w *word.Word) {
				assert.Equal(t, 1, w.WrongCount)
				assert.Equal(t, 1, w.ImportanceCount)
				assert.Equal(t, 0, w.SRSStage)
			},
		},
		{
			name: "out of range choice asks again",
			input: func(options []string) string {
				return "9\nabc\n" + choiceOf(options, "사과") + "\n"
			},
			wantOutputs: []string{"Enter a number between 1 and 3", "It's correct."},
			check: func(t *testing.T, w *word.Word) {
				assert.Equal(t, 1, w.CorrectCount)
			},
		},
		{
			name: "command before choosing",
			input: func(options []string) string {
				return "m\n" + choiceOf(options, "사과") + "\n"
			},
			wantOutputs: []string{"Mastered apple: true"},
			check: func(t *testing.T, w *word.Word) {
				assert.True(t, w.IsMastered)
				assert.Equal(t, 1, w.CorrectCount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := newWords()
			options := expectedOptions(newWords())
			require.Len(t, options, 3)

			fixture := newQuizFixture(t, words, study.DefaultSettings(), strings.NewReader(tt.input(options)))
			sampler := study.NewSampler(rand.New(rand.NewSource(seed)))
			quiz := NewMultipleChoiceQuiz(context.Background(), fixture.base, fixture.store, sampler)

			require.NoError(t, fixture.base.Run(context.Background(), quiz))

			output := fixture.out.String()
			for i, option := range options {
				assert.Contains(t, output, strconv.Itoa(i+1)+". "+option)
			}
			for _, want := range tt.wantOutputs {
				assert.Contains(t, output, want)
			}
			tt.check(t, words[0])
		})
	}
}
