package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/vocato/internal/cli"
	"github.com/at-ishikawa/vocato/internal/config"
	"github.com/at-ishikawa/vocato/internal/progress"
	"github.com/at-ishikawa/vocato/internal/speech"
	"github.com/at-ishikawa/vocato/internal/study"
	"github.com/at-ishikawa/vocato/internal/word"
)

type studyOptions struct {
	group           string
	mode            string
	count           int
	favorites       bool
	autoPlayMode    string
	intervalSeconds float64
	resume          bool
}

func newStudyCommand() *cobra.Command {
	var options studyOptions
	command := &cobra.Command{
		Use:   "study",
		Short: "Study the words that are due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, err := openDependencies(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := deps.Close(); err != nil {
					slog.Default().Warn("failed to close the database", slog.Any("error", err))
				}
			}()

			settings, err := studySettings(cmd.Flags(), deps.cfg.Study, options)
			if err != nil {
				return err
			}
			return runStudy(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), deps, settings, options.resume)
		},
	}

	bindStudyFlags(command.Flags(), &options)
	return command
}

func bindStudyFlags(flags *pflag.FlagSet, options *studyOptions) {
	flags.StringVar(&options.group, "group", "", "word group: all, new, learning, reviewing, mastered, favorites or difficult")
	flags.StringVar(&options.mode, "mode", "", "quiz mode: flashcards, multiple-choice, dictation or auto-play")
	flags.IntVar(&options.count, "count", 0, "number of words per session, 0 for every due word")
	flags.BoolVar(&options.favorites, "favorites", false, "also include favorite words outside the group")
	flags.StringVar(&options.autoPlayMode, "autoplay-mode", "", "what auto-play reads: meaning-only, term-only, both or none")
	flags.Float64Var(&options.intervalSeconds, "interval", 0, "auto-play interval in seconds, between 1 and 10")
	flags.BoolVar(&options.resume, "resume", false, "resume the session saved with pause")
}

// studySettings starts from the configured defaults and applies the flags that were set.
func studySettings(flags *pflag.FlagSet, cfg config.StudyConfig, options studyOptions) (study.Settings, error) {
	settings, err := study.SettingsFromConfig(cfg)
	if err != nil {
		return study.Settings{}, fmt.Errorf("study.SettingsFromConfig() > %w", err)
	}

	if flags.Changed("group") {
		if settings.WordGroup, err = word.ParseGroup(options.group); err != nil {
			return study.Settings{}, err
		}
	}
	if flags.Changed("mode") {
		if settings.QuizMode, err = study.ParseQuizMode(options.mode); err != nil {
			return study.Settings{}, err
		}
	}
	if flags.Changed("count") {
		settings.QuestionCount = options.count
	}
	if flags.Changed("favorites") {
		settings.IncludeFavorites = options.favorites
	}
	if flags.Changed("autoplay-mode") {
		if settings.AutoPlayMode, err = study.ParseAutoPlayMode(options.autoPlayMode); err != nil {
			return study.Settings{}, err
		}
	}
	if flags.Changed("interval") {
		settings.AutoPlayInterval = time.Duration(options.intervalSeconds * float64(time.Second))
	}

	if err := settings.Validate(); err != nil {
		return study.Settings{}, err
	}
	return settings.Normalize(), nil
}

func runStudy(ctx context.Context, in io.Reader, out io.Writer, deps *dependencies, settings study.Settings, resume bool) error {
	session, err := study.NewSession(ctx, deps.words, deps.progress, deps.clock, settings)
	if err != nil {
		return fmt.Errorf("study.NewSession() > %w", err)
	}

	switch {
	case resume && session.Restore(ctx):
		_, _ = fmt.Fprintf(out, "Resuming the saved session at word %d of %d\n", session.Cursor()+1, len(session.Queue()))
	case resume:
		_, _ = fmt.Fprintln(out, "No saved session was found. Starting a new one.")
	case session.HasUnfinishedSession():
		_, _ = fmt.Fprintln(out, "You have a paused session. Run with --resume to continue it.")
	}

	voice := speech.NewVoice(speech.NewConsoleSpeaker(out), deps.cfg.Speech.LearningLanguage, deps.cfg.Speech.SystemLanguage)
	base := cli.NewInteractiveQuizCLI(session, progress.NewTracker(deps.progress, deps.clock), voice, in, out)
	quiz := newQuiz(ctx, base, deps, settings.QuizMode)

	_, _ = fmt.Fprintf(out, "Starting %s with %d words. Type ? for commands.\n\n", settings.QuizMode, len(session.Queue()))
	return base.Run(ctx, quiz)
}

func newQuiz(ctx context.Context, base *cli.InteractiveQuizCLI, deps *dependencies, mode study.QuizMode) cli.Session {
	rng := rand.New(rand.NewSource(deps.clock.Now().UnixNano()))
	switch mode {
	case study.QuizModeMultipleChoice:
		return cli.NewMultipleChoiceQuiz(ctx, base, deps.words, study.NewSampler(rng))
	case study.QuizModeDictation:
		return cli.NewDictationQuiz(base, rng)
	case study.QuizModeAutoPlay:
		return cli.NewAutoPlayRunner(base, deps.clock)
	default:
		return cli.NewFlashcardsQuiz(base)
	}
}
