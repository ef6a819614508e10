// Package study builds review queues and drives study sessions over them.
package study

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/at-ishikawa/vocato/internal/config"
	"github.com/at-ishikawa/vocato/internal/word"
)

var ErrInvalidSettings = errors.New("invalid study settings")

type QuizMode string

const (
	QuizModeFlashcards     QuizMode = "flashcards"
	QuizModeMultipleChoice QuizMode = "multiple_choice"
	QuizModeDictation      QuizMode = "dictation"
	QuizModeAutoPlay       QuizMode = "auto_play"
)

var quizModes = []QuizMode{
	QuizModeFlashcards,
	QuizModeMultipleChoice,
	QuizModeDictation,
	QuizModeAutoPlay,
}

func ParseQuizMode(name string) (QuizMode, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for _, mode := range quizModes {
		if string(mode) == normalized {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w: unknown quiz mode %q", ErrInvalidSettings, name)
}

// AutoPlayMode selects what auto-play reads aloud on each tick.
type AutoPlayMode string

const (
	AutoPlayMeaningOnly AutoPlayMode = "meaning_only"
	AutoPlayTermOnly    AutoPlayMode = "term_only"
	AutoPlayBoth        AutoPlayMode = "both"
	AutoPlayNone        AutoPlayMode = "none"
)

var autoPlayModes = []AutoPlayMode{
	AutoPlayMeaningOnly,
	AutoPlayTermOnly,
	AutoPlayBoth,
	AutoPlayNone,
}

func ParseAutoPlayMode(name string) (AutoPlayMode, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for _, mode := range autoPlayModes {
		if string(mode) == normalized {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w: unknown auto-play mode %q", ErrInvalidSettings, name)
}

const (
	MinAutoPlayInterval = time.Second
	MaxAutoPlayInterval = 10 * time.Second
)

// Settings decides which words a session studies and how they are presented.
type Settings struct {
	WordGroup        word.Group
	QuizMode         QuizMode
	QuestionCount    int
	IncludeFavorites bool
	AutoPlayMode     AutoPlayMode
	AutoPlayInterval time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		WordGroup:        word.GroupAll,
		QuizMode:         QuizModeFlashcards,
		QuestionCount:    10,
		IncludeFavorites: false,
		AutoPlayMode:     AutoPlayBoth,
		AutoPlayInterval: 3 * time.Second,
	}
}

// SettingsFromConfig converts the study section of the configuration.
func SettingsFromConfig(cfg config.StudyConfig) (Settings, error) {
	group, err := word.ParseGroup(cfg.WordGroup)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	quizMode, err := ParseQuizMode(cfg.QuizMode)
	if err != nil {
		return Settings{}, err
	}
	autoPlayMode, err := ParseAutoPlayMode(cfg.AutoPlayMode)
	if err != nil {
		return Settings{}, err
	}

	settings := Settings{
		WordGroup:        group,
		QuizMode:         quizMode,
		QuestionCount:    cfg.QuestionCount,
		IncludeFavorites: cfg.IncludeFavorites,
		AutoPlayMode:     autoPlayMode,
		AutoPlayInterval: cfg.AutoPlayInterval(),
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings.Normalize(), nil
}

// Validate rejects settings no session can run with.
// The auto-play interval is not checked because Normalize clamps it.
func (s Settings) Validate() error {
	if s.QuestionCount < 0 {
		return fmt.Errorf("%w: question count must not be negative, got %d", ErrInvalidSettings, s.QuestionCount)
	}
	if _, err := word.ParseGroup(string(s.WordGroup)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if _, err := ParseQuizMode(string(s.QuizMode)); err != nil {
		return err
	}
	if _, err := ParseAutoPlayMode(string(s.AutoPlayMode)); err != nil {
		return err
	}
	return nil
}

// Normalize returns a copy with the auto-play interval clamped to [1s, 10s].
func (s Settings) Normalize() Settings {
	if s.WordGroup == "" {
		s.WordGroup = word.GroupAll
	}
	switch {
	case s.AutoPlayInterval < MinAutoPlayInterval:
		s.AutoPlayInterval = MinAutoPlayInterval
	case s.AutoPlayInterval > MaxAutoPlayInterval:
		s.AutoPlayInterval = MaxAutoPlayInterval
	}
	return s
}
