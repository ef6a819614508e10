package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/vocato/internal/progress"
	"github.com/at-ishikawa/vocato/internal/study"
	"github.com/at-ishikawa/vocato/internal/word"
)

var errEnd = errors.New("end")

const (
	commandPause       = "pause"
	commandQuit        = "quit"
	commandImportant   = "i"
	commandUnimportant = "d"
	commandFavorite    = "f"
	commandMastered    = "m"
)

const commandHelp = "Commands: pause (save and exit), quit, i (more important), d (less important), f (favorite), m (mastered)"

// InteractiveQuizCLI contains shared logic for interactive quiz CLIs
type InteractiveQuizCLI struct {
	session      *study.Session
	tracker      *progress.Tracker
	narrator     study.Narrator
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

// NewInteractiveQuizCLI creates the base CLI shared by every quiz mode.
func NewInteractiveQuizCLI(
	session *study.Session,
	tracker *progress.Tracker,
	narrator study.Narrator,
	stdin io.Reader,
	stdout io.Writer,
) *InteractiveQuizCLI {
	return &InteractiveQuizCLI{
		session:      session,
		tracker:      tracker,
		narrator:     narrator,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

//go:generate mockgen -source=interactive_quiz_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(context context.Context) error
}

// Run repeats session until it ends, fails, or the process is interrupted.
// The time spent is recorded as today's study time.
func (cli *InteractiveQuizCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	cli.tracker.Start()
	defer func() {
		if err := cli.tracker.End(context.WithoutCancel(ctx)); err != nil {
			slog.Default().Warn("failed to record the study time", slog.Any("error", err))
		}
	}()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		cli.println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

func (cli *InteractiveQuizCLI) println(a ...any) {
	_, _ = fmt.Fprintln(cli.stdoutWriter, a...)
}

func (cli *InteractiveQuizCLI) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(cli.stdoutWriter, format, a...)
}

// readLine prints the prompt and returns the trimmed input line.
// EOF ends the quiz.
func (cli *InteractiveQuizCLI) readLine(prompt string) (string, error) {
	_, _ = cli.bold.Fprint(cli.stdoutWriter, prompt)
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) == "" {
				cli.println()
				return "", errEnd
			}
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// current returns the word under the cursor, or errEnd when there is nothing to study.
func (cli *InteractiveQuizCLI) current() (*word.Word, error) {
	w := cli.session.Current()
	if w == nil {
		cli.println("No words to study!")
		return nil, errEnd
	}
	return w, nil
}

func (cli *InteractiveQuizCLI) printProgress() {
	cli.printf("[%d/%d]\n", cli.session.Cursor()+1, len(cli.session.Queue()))
}

// handleCommand runs a session command typed instead of an answer.
// It reports whether input was a command.
func (cli *InteractiveQuizCLI) handleCommand(ctx context.Context, input string, w *word.Word) (bool, error) {
	var err error
	switch strings.ToLower(input) {
	case commandPause:
		if err := cli.session.PersistProgress(ctx); err != nil {
			return true, fmt.Errorf("session.PersistProgress() > %w", err)
		}
		cli.println("Progress saved. Run `vocato study --resume` to continue.")
		return true, errEnd
	case commandQuit:
		return true, errEnd
	case commandImportant:
		err = cli.session.IncreaseImportance(ctx, w)
		cli.printf("Importance of %s: %d\n", w.Term, w.ImportanceCount)
	case commandUnimportant:
		err = cli.session.DecreaseImportance(ctx, w)
		cli.printf("Importance of %s: %d\n", w.Term, w.ImportanceCount)
	case commandFavorite:
		err = cli.session.ToggleFavorite(ctx, w)
		cli.printf("Favorite %s: %t\n", w.Term, w.IsFavorite)
	case commandMastered:
		err = cli.session.ToggleMastered(ctx, w)
		cli.printf("Mastered %s: %t\n", w.Term, w.IsMastered)
	case "?", "help":
		cli.println(commandHelp)
	default:
		return false, nil
	}
	return true, err
}

// answer records the answer with the policy of mode and completes the session at the end of the queue.
func (cli *InteractiveQuizCLI) answer(ctx context.Context, correct bool, mode study.QuizMode) error {
	finished, err := cli.session.Answer(ctx, correct, study.PolicyFor(mode))
	if err != nil {
		return fmt.Errorf("session.Answer() > %w", err)
	}
	if !finished {
		return nil
	}
	return cli.complete(ctx)
}

// complete finishes the pass over the queue and asks whether to go on with the words still due.
func (cli *InteractiveQuizCLI) complete(ctx context.Context) error {
	if err := cli.session.Complete(ctx); err != nil {
		return fmt.Errorf("session.Complete() > %w", err)
	}
	if cli.session.State() == study.StateCompleted {
		_, _ = color.New(color.FgGreen).Fprintln(cli.stdoutWriter, "All done! No more words are due.")
		return errEnd
	}

	input, err := cli.readLine(fmt.Sprintf("%d words are still due. Continue? [y/N]: ", len(cli.session.Queue())))
	if err != nil {
		return err
	}
	if !isYes(input) {
		return errEnd
	}
	return nil
}

func (cli *InteractiveQuizCLI) printResult(correct bool, w *word.Word) {
	if correct {
		cli.printf("✅ ")
		_, _ = color.New(color.FgGreen).Fprintf(cli.stdoutWriter, "It's correct. %s means %s\n",
			cli.bold.Sprint(w.Term), cli.italic.Sprint(w.Meaning))
		return
	}
	cli.printf("❌ ")
	_, _ = color.New(color.FgRed).Fprintf(cli.stdoutWriter, "It's wrong. %s means %s\n",
		cli.bold.Sprint(w.Term), cli.italic.Sprint(w.Meaning))
}

func (cli *InteractiveQuizCLI) printDetails(w *word.Word) {
	if w.Memo != "" {
		cli.printf("   Memo: %s\n", w.Memo)
	}
	if w.Synonyms != "" {
		cli.printf("   Synonyms: %s\n", w.Synonyms)
	}
}

func isYes(input string) bool {
	switch strings.ToLower(input) {
	case "y", "yes":
		return true
	}
	return false
}
