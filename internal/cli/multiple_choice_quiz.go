package cli

import (
	"context"
	"strconv"

	"github.com/at-ishikawa/vocato/internal/study"
	"github.com/at-ishikawa/vocato/internal/word"
)

// MultipleChoiceQuiz asks for the meaning of a term among distractors drawn from the word list.
type MultipleChoiceQuiz struct {
	*InteractiveQuizCLI
	sampler *study.Sampler
	pool    []*word.Word
}

// NewMultipleChoiceQuiz loads the distractor pool once for the whole quiz.
func NewMultipleChoiceQuiz(ctx context.Context, base *InteractiveQuizCLI, store word.Store, sampler *study.Sampler) *MultipleChoiceQuiz {
	return &MultipleChoiceQuiz{
		InteractiveQuizCLI: base,
		sampler:            sampler,
		pool:               sampler.LoadPool(ctx, store),
	}
}

func (q *MultipleChoiceQuiz) Session(ctx context.Context) error {
	w, err := q.current()
	if err != nil {
		return err
	}

	q.printProgress()
	q.printf("%s\n", q.bold.Sprint(w.Term))
	q.narrator.SpeakTerm(w.Term)

	options := q.sampler.Options(w, q.pool, study.DefaultOptionCount)
	for i, option := range options {
		q.printf("  %d. %s\n", i+1, option)
	}

	var choice int
	for {
		input, err := q.readLine("Choose the meaning: ")
		if err != nil {
			return err
		}
		if handled, err := q.handleCommand(ctx, input, w); handled {
			if err != nil {
				return err
			}
			continue
		}
		choice, err = strconv.Atoi(input)
		if err != nil || choice < 1 || choice > len(options) {
			q.printf("Enter a number between 1 and %d\n", len(options))
			continue
		}
		break
	}

	correct := options[choice-1] == w.Meaning
	q.printResult(correct, w)
	q.printDetails(w)
	q.println()
	return q.answer(ctx, correct, study.QuizModeMultipleChoice)
}
