package speech

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// ConsoleSpeaker prints utterances instead of playing audio.
type ConsoleSpeaker struct {
	mu     sync.Mutex
	writer io.Writer
	voice  *color.Color
	text   *color.Color
}

// NewConsoleSpeaker creates a new ConsoleSpeaker.
func NewConsoleSpeaker(writer io.Writer) *ConsoleSpeaker {
	return &ConsoleSpeaker{
		writer: writer,
		voice:  color.New(color.FgCyan),
		text:   color.New(color.Bold),
	}
}

func (s *ConsoleSpeaker) Speak(text, languageCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.writer, "%s %s\n", s.voice.Sprintf("[%s]", languageCode), s.text.Sprint(text))
}
