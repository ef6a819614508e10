package cli

import (
	"context"
	"math/rand"
	"strings"

	"github.com/at-ishikawa/vocato/internal/study"
)

// DictationQuiz shows either the term or the meaning and asks the user to type the other one.
// The direction is drawn once per word, so the question and the expected answer always agree.
type DictationQuiz struct {
	*InteractiveQuizCLI
	rng *rand.Rand
}

func NewDictationQuiz(base *InteractiveQuizCLI, rng *rand.Rand) *DictationQuiz {
	return &DictationQuiz{InteractiveQuizCLI: base, rng: rng}
}

func (q *DictationQuiz) Session(ctx context.Context) error {
	w, err := q.current()
	if err != nil {
		return err
	}

	q.printProgress()
	askMeaning := q.rng.Intn(2) == 0
	var expected, prompt string
	if askMeaning {
		q.printf("%s\n", q.bold.Sprint(w.Term))
		q.narrator.SpeakTerm(w.Term)
		expected, prompt = w.Meaning, "Type the meaning: "
	} else {
		q.printf("%s\n", q.italic.Sprint(w.Meaning))
		q.narrator.SpeakMeaning(w.Meaning)
		expected, prompt = w.Term, "Type the term: "
	}

	var input string
	for {
		input, err = q.readLine(prompt)
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

	correct := input != "" && matchesAnswer(input, expected)
	q.printResult(correct, w)
	if !correct {
		q.printf("   Expected: %s\n", expected)
	}
	q.println()
	return q.answer(ctx, correct, study.QuizModeDictation)
}

// matchesAnswer compares ignoring case and whitespace.
func matchesAnswer(input, expected string) bool {
	return normalizeAnswer(input) == normalizeAnswer(expected)
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
