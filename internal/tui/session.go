package tui

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/mindsight/internal/keymap"
	"github.com/verte-zerg/mindsight/internal/render"
	"github.com/verte-zerg/mindsight/internal/selection"
	"github.com/verte-zerg/mindsight/internal/trial"
)

// Session is the context of one play-through from key assignment to summary.
type Session struct {
	ID        string
	Selection selection.Selection
	Binding   keymap.Binding
	Renderer  render.Renderer
	Clock     trial.Clock
	Source    rand.Source
	StartedAt time.Time

	loop *trial.Loop
}

func newSession(sel selection.Selection, binding keymap.Binding, cfg sessionConfig) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Selection: sel,
		Binding:   binding,
		Renderer:  render.ForCategory(sel.Category),
		Clock:     cfg.clock,
		Source:    cfg.source,
		StartedAt: cfg.clock.Now(),
	}
	s.loop = trial.NewLoop(binding, trial.Options{
		SkipKey: cfg.skipKey,
		QuitKey: cfg.quitKey,
		Clock:   s.Clock,
		Source:  s.Source,
	})
	return s
}

type sessionConfig struct {
	skipKey string
	quitKey string
	clock   trial.Clock
	source  rand.Source
}

// Loop returns the trial state machine driving the session.
func (s *Session) Loop() *trial.Loop {
	return s.loop
}
