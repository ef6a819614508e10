package cli

import (
	"context"

	"github.com/at-ishikawa/vocato/internal/study"
)

// FlashcardsQuiz shows a term, reveals its meaning, and asks whether the user knew it.
type FlashcardsQuiz struct {
	*InteractiveQuizCLI
}

func NewFlashcardsQuiz(base *InteractiveQuizCLI) *FlashcardsQuiz {
	return &FlashcardsQuiz{InteractiveQuizCLI: base}
}

func (q *FlashcardsQuiz) Session(ctx context.Context) error {
	w, err := q.current()
	if err != nil {
		return err
	}

	q.printProgress()
	q.printf("%s\n", q.bold.Sprint(w.Term))
	q.narrator.SpeakTerm(w.Term)

	input, err := q.readLine("Press Enter to show the meaning: ")
	if err != nil {
		return err
	}
	if handled, err := q.handleCommand(ctx, input, w); handled {
		return err
	}

	q.printf("Meaning: %s\n", q.italic.Sprint(w.Meaning))
	q.printDetails(w)
	q.narrator.SpeakMeaning(w.Meaning)

	for {
		input, err = q.readLine("Did you know it? [y/n]: ")
		if err != nil {
			return err
		}
		if handled, err := q.handleCommand(ctx, input, w); handled {
			if err != nil {
				return err
			}
			continue
		}
		break
	}

	correct := isYes(input)
	q.printResult(correct, w)
	q.println()
	return q.answer(ctx, correct, study.QuizModeFlashcards)
}
