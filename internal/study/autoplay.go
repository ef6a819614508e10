package study

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/at-ishikawa/vocato/internal/word"
)

// playbackDelay approximates the time an utterance takes before the next step runs.
const playbackDelay = time.Second

// Timers schedules callbacks. clockwork.Clock satisfies it.
type Timers interface {
	AfterFunc(d time.Duration, f func()) clockwork.Timer
}

// Narrator reads words aloud without waiting for the speech to finish.
type Narrator interface {
	SpeakTerm(text string)
	SpeakMeaning(text string)
}

// Cursor is the part of a session auto-play drives.
type Cursor interface {
	Current() *word.Word
	Advance() bool
}

type AutoPlayState int

const (
	AutoPlayStopped AutoPlayState = iota
	AutoPlayPlaying
	AutoPlayPaused
)

func (s AutoPlayState) String() string {
	switch s {
	case AutoPlayStopped:
		return "stopped"
	case AutoPlayPlaying:
		return "playing"
	case AutoPlayPaused:
		return "paused"
	default:
		return fmt.Sprintf("AutoPlayState(%d)", int(s))
	}
}

// AutoPlayController reads the current word on every interval and then moves to the next one.
//
// Every scheduled callback carries the generation it was scheduled in.
// Pause and Stop start a new generation, so a callback that was already on its way does nothing.
type AutoPlayController struct {
	cursor   Cursor
	narrator Narrator
	timers   Timers

	mu         sync.Mutex
	settings   Settings
	mode       AutoPlayMode
	interval   time.Duration
	state      AutoPlayState
	generation uint64
	nextID     uint64
	pending    map[uint64]clockwork.Timer
	followUp   func()
	followUpID uint64
}

func NewAutoPlayController(cursor Cursor, narrator Narrator, timers Timers, settings Settings) *AutoPlayController {
	return &AutoPlayController{
		cursor:   cursor,
		narrator: narrator,
		timers:   timers,
		settings: settings.Normalize(),
		pending:  make(map[uint64]clockwork.Timer),
	}
}

func (c *AutoPlayController) State() AutoPlayState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetSettings replaces the settings used by the next Start. A running playback keeps its settings.
func (c *AutoPlayController) SetSettings(settings Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = settings.Normalize()
}

// Start begins playback with the current settings. It does nothing while playing.
func (c *AutoPlayController) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == AutoPlayPlaying {
		return
	}
	c.cancelLocked()
	c.mode = c.settings.AutoPlayMode
	c.interval = c.settings.AutoPlayInterval
	c.state = AutoPlayPlaying
	c.scheduleLocked(c.interval, c.tickLocked)
}

// Pause cancels every pending callback. No word is read or skipped until Resume.
func (c *AutoPlayController) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != AutoPlayPlaying {
		return
	}
	c.cancelLocked()
	c.state = AutoPlayPaused
}

// Resume restarts the interval from zero.
func (c *AutoPlayController) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != AutoPlayPaused {
		return
	}
	c.state = AutoPlayPlaying
	c.scheduleLocked(c.interval, c.tickLocked)
}

// Stop cancels every pending callback. It is safe to call in any state and more than once.
func (c *AutoPlayController) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.state = AutoPlayStopped
}

func (c *AutoPlayController) tickLocked() {
	// The previous word finishes before the next one is read.
	c.flushFollowUpLocked()

	current := c.cursor.Current()
	if current != nil {
		mode := c.mode
		switch mode {
		case AutoPlayMeaningOnly:
			c.narrator.SpeakMeaning(current.Meaning)
		case AutoPlayTermOnly:
			c.narrator.SpeakTerm(current.Term)
		case AutoPlayBoth:
			c.narrator.SpeakTerm(current.Term)
		}
		c.scheduleFollowUpLocked(func() {
			if mode == AutoPlayBoth {
				c.narrator.SpeakMeaning(current.Meaning)
			}
			c.cursor.Advance()
		})
	}
	c.scheduleLocked(c.interval, c.tickLocked)
}

// scheduleFollowUpLocked runs fn after the playback delay or at the next tick, whichever comes first.
func (c *AutoPlayController) scheduleFollowUpLocked(fn func()) {
	c.followUp = fn
	c.scheduleLocked(playbackDelay, c.flushFollowUpLocked)
	c.followUpID = c.nextID
}

func (c *AutoPlayController) flushFollowUpLocked() {
	fn := c.followUp
	if fn == nil {
		return
	}
	if timer, ok := c.pending[c.followUpID]; ok {
		timer.Stop()
		delete(c.pending, c.followUpID)
	}
	c.followUp = nil
	c.followUpID = 0
	fn()
}

// scheduleLocked runs fn after d unless the generation changes first.
func (c *AutoPlayController) scheduleLocked(d time.Duration, fn func()) {
	generation := c.generation
	c.nextID++
	id := c.nextID
	c.pending[id] = c.timers.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.pending[id]; !ok {
			return
		}
		delete(c.pending, id)
		if generation != c.generation || c.state != AutoPlayPlaying {
			return
		}
		fn()
	})
}

func (c *AutoPlayController) cancelLocked() {
	c.generation++
	c.followUp = nil
	c.followUpID = 0
	for id, timer := range c.pending {
		timer.Stop()
		delete(c.pending, id)
	}
}
