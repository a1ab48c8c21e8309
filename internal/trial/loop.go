// Package trial runs the present-and-respond loop and scores responses.
//
// The loop is an explicit state machine advanced by an external event pump:
// each call to Tick hands it the events polled since the previous call.
// A trial stays in PhaseAwaiting across any number of ticks until a bound
// key, the skip key, the quit key or a close event arrives.
package trial

import (
	"errors"
	"math/rand"
	"time"

	"github.com/verte-zerg/mindsight/internal/catalog"
	"github.com/verte-zerg/mindsight/internal/keymap"
	"github.com/verte-zerg/mindsight/internal/model"
)

var (
	// ErrNotAwaiting is returned when a response arrives with no trial on screen.
	ErrNotAwaiting = errors.New("no trial awaiting a response")
	// ErrNotPresenting is returned when Present is called while a trial is still open.
	ErrNotPresenting = errors.New("loop is not ready to present")
	// ErrExited is returned for any event handled after the loop exited.
	ErrExited = errors.New("loop has exited")
)

// Phase is the state of the loop.
type Phase int

const (
	PhasePresent Phase = iota
	PhaseAwaiting
	PhaseExited
)

func (p Phase) String() string {
	switch p {
	case PhasePresent:
		return "present"
	case PhaseAwaiting:
		return "awaiting"
	case PhaseExited:
		return "exited"
	default:
		return "unknown"
	}
}

// EventKind classifies input events.
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventClose
)

// Event is a discrete input event from the input layer. At is when the
// input layer received it; a zero At means the time it is handled.
type Event struct {
	Kind EventKind
	Key  string
	At   time.Time
}

// KeyDown returns a key-down event for key.
func KeyDown(key string) Event {
	return Event{Kind: EventKeyDown, Key: keymap.NormalizeKey(key)}
}

// KeyDownAt returns a key-down event for key stamped with its arrival time.
func KeyDownAt(key string, at time.Time) Event {
	ev := KeyDown(key)
	ev.At = at
	return ev
}

// Close returns a window-close event.
func Close() Event {
	return Event{Kind: EventClose}
}

// Outcome classifies what an event did to the loop.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCorrect
	OutcomeWrong
	OutcomeSkipped
	OutcomeExited
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeExited:
		return "exited"
	default:
		return "none"
	}
}

// Trial is a single presentation.
type Trial struct {
	Seq     int
	Item    catalog.Item
	ShownAt time.Time
}

// Result reports the effect of one handled event.
type Result struct {
	Outcome Outcome
	Trial   Trial
	Guess   catalog.Item
	Elapsed time.Duration
}

// Clock supplies presentation and response timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}

// Options configures a Loop. Zero values select the defaults.
type Options struct {
	SkipKey string
	QuitKey string
	Clock   Clock
	Source  rand.Source
}

// Loop is the trial state machine for one session.
type Loop struct {
	binding keymap.Binding
	items   [2]catalog.Item
	skipKey string
	quitKey string
	clock   Clock
	rnd     *rand.Rand

	phase   Phase
	current Trial
	seq     int
	stats   model.Statistics
}

// NewLoop returns a loop in PhasePresent with empty statistics.
func NewLoop(binding keymap.Binding, opts Options) *Loop {
	if opts.SkipKey == "" {
		opts.SkipKey = keymap.DefaultSkipKey
	}
	if opts.QuitKey == "" {
		opts.QuitKey = keymap.DefaultQuitKey
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	if opts.Source == nil {
		opts.Source = rand.NewSource(time.Now().UnixNano())
	}
	return &Loop{
		binding: binding,
		items:   binding.Items(),
		skipKey: keymap.NormalizeKey(opts.SkipKey),
		quitKey: keymap.NormalizeKey(opts.QuitKey),
		clock:   opts.Clock,
		rnd:     rand.New(opts.Source),
		phase:   PhasePresent,
	}
}

// Phase returns the current state.
func (l *Loop) Phase() Phase {
	return l.phase
}

// Current returns the trial on screen, if one is awaiting a response.
func (l *Loop) Current() (Trial, bool) {
	if l.phase != PhaseAwaiting {
		return Trial{}, false
	}
	return l.current, true
}

// Stats returns a snapshot of the accumulated statistics.
func (l *Loop) Stats() model.Statistics {
	return l.stats.Clone()
}

// Present picks one of the two items uniformly at random, with replacement,
// and opens a trial for it.
func (l *Loop) Present() (Trial, error) {
	if l.phase != PhasePresent {
		if l.phase == PhaseExited {
			return Trial{}, ErrExited
		}
		return Trial{}, ErrNotPresenting
	}
	l.seq++
	l.current = Trial{
		Seq:     l.seq,
		Item:    l.items[l.rnd.Intn(len(l.items))],
		ShownAt: l.clock.Now(),
	}
	l.phase = PhaseAwaiting
	return l.current, nil
}

// Handle applies a single event. Keys that are neither bound, skip nor quit
// yield OutcomeNone and leave the trial open.
func (l *Loop) Handle(ev Event) (Result, error) {
	if l.phase == PhaseExited {
		return Result{}, ErrExited
	}
	if l.isExit(ev) {
		l.phase = PhaseExited
		l.current = Trial{}
		return Result{Outcome: OutcomeExited}, nil
	}
	key := keymap.NormalizeKey(ev.Key)
	if key == l.skipKey {
		if l.phase != PhaseAwaiting {
			return Result{}, ErrNotAwaiting
		}
		l.stats.Skipped++
		l.phase = PhasePresent
		return Result{Outcome: OutcomeSkipped, Trial: l.current}, nil
	}
	guess, ok := l.binding.Lookup(key)
	if !ok {
		return Result{}, nil
	}
	if l.phase != PhaseAwaiting {
		return Result{}, ErrNotAwaiting
	}
	at := ev.At
	if at.IsZero() {
		at = l.clock.Now()
	}
	elapsed := at.Sub(l.current.ShownAt)
	if elapsed < 0 {
		elapsed = 0
	}
	res := Result{Trial: l.current, Guess: guess, Elapsed: elapsed}
	if guess.Name == l.current.Item.Name {
		l.stats.Correct++
		res.Outcome = OutcomeCorrect
	} else {
		l.stats.Wrong++
		res.Outcome = OutcomeWrong
	}
	l.stats.ResponseTimes = append(l.stats.ResponseTimes, elapsed)
	l.stats.TotalResponded++
	l.phase = PhasePresent
	return res, nil
}

// Tick processes one batch of polled events in arrival order and presents
// the next trial when the previous one has been answered. Only the first
// response or skip in a batch counts; later ones belong to a trial that
// has already closed and are dropped. Quit and close are always honoured.
func (l *Loop) Tick(events []Event) []Result {
	if l.phase == PhasePresent {
		if _, err := l.Present(); err != nil {
			return nil
		}
	}
	var results []Result
	answered := false
	for _, ev := range events {
		if l.phase == PhaseExited {
			break
		}
		if answered && !l.isExit(ev) {
			continue
		}
		res, err := l.Handle(ev)
		if err != nil || res.Outcome == OutcomeNone {
			continue
		}
		results = append(results, res)
		if res.Outcome != OutcomeExited {
			answered = true
		}
	}
	if l.phase == PhasePresent {
		if _, err := l.Present(); err != nil {
			return results
		}
	}
	return results
}

func (l *Loop) isExit(ev Event) bool {
	if ev.Kind == EventClose {
		return true
	}
	return keymap.NormalizeKey(ev.Key) == l.quitKey
}
