// Package model defines shared data structures.
package model

import "time"

// Config defines play settings.
type Config struct {
	Keys    [2]string
	SkipKey string
	QuitKey string
	Seed    int64
	Hints   bool
	FPS     int
}

// Statistics accumulates trial outcomes for one play session.
type Statistics struct {
	Correct        int
	Wrong          int
	Skipped        int
	TotalResponded int
	ResponseTimes  []time.Duration
}

// Clone returns a copy that shares no memory with s.
func (s Statistics) Clone() Statistics {
	out := s
	if s.ResponseTimes != nil {
		out.ResponseTimes = make([]time.Duration, len(s.ResponseTimes))
		copy(out.ResponseTimes, s.ResponseTimes)
	}
	return out
}

// Preset is a named category and item pair saved for quick starts.
type Preset struct {
	Name      string
	Category  string
	Items     [2]string
	CreatedAt time.Time
}
