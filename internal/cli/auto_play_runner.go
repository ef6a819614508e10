package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/at-ishikawa/vocato/internal/study"
	"github.com/at-ishikawa/vocato/internal/word"
)

const (
	keyTogglePause = "p"
	keyQuit        = "q"
)

// playbackCursor reports when auto-play has run past the last word.
type playbackCursor struct {
	session  *study.Session
	finished chan struct{}
}

func (c *playbackCursor) Current() *word.Word {
	return c.session.Current()
}

func (c *playbackCursor) Advance() bool {
	end := c.session.Advance()
	if end {
		select {
		case c.finished <- struct{}{}:
		default:
		}
	}
	return end
}

// AutoPlayRunner plays the queue aloud on a timer while reading control keys from stdin.
type AutoPlayRunner struct {
	*InteractiveQuizCLI
	controller *study.AutoPlayController
	finished   chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	reading   sync.WaitGroup
	lines     chan string
	readErr   chan error
}

func NewAutoPlayRunner(base *InteractiveQuizCLI, timers study.Timers) *AutoPlayRunner {
	cursor := &playbackCursor{session: base.session, finished: make(chan struct{}, 1)}
	return &AutoPlayRunner{
		InteractiveQuizCLI: base,
		controller:         study.NewAutoPlayController(cursor, base.narrator, timers, base.session.Settings()),
		finished:           cursor.finished,
		done:               make(chan struct{}),
		lines:              make(chan string),
		readErr:            make(chan error, 1),
	}
}

func (r *AutoPlayRunner) start() {
	r.startOnce.Do(func() {
		settings := r.session.Settings()
		r.printf("Auto-play: %d words, every %s (%s)\n", len(r.session.Queue()), settings.AutoPlayInterval, settings.AutoPlayMode)
		r.println("Keys: p (pause/resume), q (quit), pause (save and exit), i, d, f, m")
		r.controller.Start()
		r.reading.Add(1)
		go func() {
			defer r.reading.Done()
			r.readLines()
		}()
	})
}

// stop ends playback and releases the input reader.
func (r *AutoPlayRunner) stop() {
	r.controller.Stop()
	r.stopOnce.Do(func() {
		close(r.done)
	})
}

func (r *AutoPlayRunner) readLines() {
	for {
		line, err := r.stdinReader.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			select {
			case r.lines <- strings.TrimSpace(line):
			case <-r.done:
				return
			}
		}
		if err != nil {
			select {
			case r.readErr <- err:
			case <-r.done:
			}
			return
		}
	}
}

func (r *AutoPlayRunner) Session(ctx context.Context) error {
	if _, err := r.current(); err != nil {
		return err
	}
	r.start()

	select {
	case <-ctx.Done():
		r.stop()
		return errEnd
	case <-r.finished:
		r.stop()
		if err := r.session.Complete(ctx); err != nil {
			return fmt.Errorf("session.Complete() > %w", err)
		}
		r.println("Finished playing all words.")
		return errEnd
	case err := <-r.readErr:
		r.stop()
		if errors.Is(err, io.EOF) {
			return errEnd
		}
		return fmt.Errorf("error reading input: %w", err)
	case line := <-r.lines:
		return r.handleKey(ctx, line)
	}
}

func (r *AutoPlayRunner) handleKey(ctx context.Context, key string) error {
	switch strings.ToLower(key) {
	case keyTogglePause:
		switch r.controller.State() {
		case study.AutoPlayPlaying:
			r.controller.Pause()
			r.println("Paused")
		case study.AutoPlayPaused:
			r.controller.Resume()
			r.println("Resumed")
		}
		return nil
	case keyQuit, commandQuit:
		r.stop()
		return errEnd
	case commandPause:
		r.stop()
	}

	w := r.session.Current()
	if w == nil {
		return nil
	}
	_, err := r.handleCommand(ctx, key, w)
	return err
}
