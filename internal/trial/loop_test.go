package trial

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/verte-zerg/mindsight/internal/catalog"
	"github.com/verte-zerg/mindsight/internal/keymap"
	"github.com/verte-zerg/mindsight/internal/selection"
	"github.com/verte-zerg/mindsight/internal/stats"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scriptedSource makes rand.Intn(2) return the scripted indices in order.
type scriptedSource struct {
	picks []int
	pos   int
}

func (s *scriptedSource) Int63() int64 {
	idx := s.picks[s.pos%len(s.picks)]
	s.pos++
	return int64(idx) << 32
}

func (s *scriptedSource) Seed(int64) {}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newRedBlueLoop(t *testing.T, picks ...int) (*Loop, *fakeClock) {
	t.Helper()
	sel, err := selection.FromNames(catalog.Colors, []string{"red", "blue"})
	require.NoError(t, err)
	b, err := keymap.New(keymap.DefaultKeys, sel, keymap.DefaultSkipKey, keymap.DefaultQuitKey)
	require.NoError(t, err)
	clock := &fakeClock{now: time.Unix(1000, 0)}
	loop := NewLoop(b, Options{Clock: clock, Source: &scriptedSource{picks: picks}})
	return loop, clock
}

func TestRedBlueScenario(t *testing.T) {
	// red, blue, red
	loop, clock := newRedBlueLoop(t, 0, 1, 0)

	loop.Tick(nil)
	cur, ok := loop.Current()
	require.True(t, ok)
	require.Equal(t, "red", cur.Item.Name)

	clock.Advance(300 * time.Millisecond)
	res := loop.Tick([]Event{KeyDown("f")})
	require.Len(t, res, 1)
	assert.Equal(t, OutcomeCorrect, res[0].Outcome)
	assert.Equal(t, 300*time.Millisecond, res[0].Elapsed)

	cur, _ = loop.Current()
	require.Equal(t, "blue", cur.Item.Name)
	clock.Advance(500 * time.Millisecond)
	res = loop.Tick([]Event{KeyDown("f")})
	require.Len(t, res, 1)
	assert.Equal(t, OutcomeWrong, res[0].Outcome)
	assert.Equal(t, "red", res[0].Guess.Name)

	cur, _ = loop.Current()
	require.Equal(t, "red", cur.Item.Name)
	res = loop.Tick([]Event{KeyDown(" ")})
	require.Len(t, res, 1)
	assert.Equal(t, OutcomeSkipped, res[0].Outcome)

	st := loop.Stats()
	assert.Equal(t, 1, st.Correct)
	assert.Equal(t, 1, st.Wrong)
	assert.Equal(t, 1, st.Skipped)
	assert.Equal(t, 2, st.TotalResponded)
	assert.Equal(t, []time.Duration{300 * time.Millisecond, 500 * time.Millisecond}, st.ResponseTimes)
	assert.InDelta(t, 50.0, stats.Accuracy(st.Correct, st.Wrong), 1e-9)
}

func TestQuitBeforeAnyTrial(t *testing.T) {
	loop, _ := newRedBlueLoop(t, 0)
	res := loop.Tick([]Event{KeyDown("esc")})
	require.Len(t, res, 1)
	assert.Equal(t, OutcomeExited, res[0].Outcome)
	assert.Equal(t, PhaseExited, loop.Phase())

	st := loop.Stats()
	summary := stats.Summarize(st)
	assert.Zero(t, st.Correct+st.Wrong+st.Skipped+st.TotalResponded)
	assert.Zero(t, summary.Accuracy)
	assert.Zero(t, summary.AvgResponse)
}

func TestQuitMidTrialDiscardsTrial(t *testing.T) {
	loop, clock := newRedBlueLoop(t, 1, 0)
	loop.Tick(nil)
	clock.Advance(time.Second)
	loop.Tick([]Event{KeyDown("j")})
	clock.Advance(10 * time.Second)
	loop.Tick([]Event{Close()})

	assert.Equal(t, PhaseExited, loop.Phase())
	_, open := loop.Current()
	assert.False(t, open)
	st := loop.Stats()
	assert.Equal(t, 1, st.Correct)
	assert.Equal(t, 1, st.TotalResponded)
	assert.Len(t, st.ResponseTimes, 1)

	_, err := loop.Handle(KeyDown("f"))
	assert.ErrorIs(t, err, ErrExited)
	assert.Empty(t, loop.Tick([]Event{KeyDown("f")}))
}

func TestOnlyFirstResponsePerBatchCounts(t *testing.T) {
	loop, _ := newRedBlueLoop(t, 0, 1)
	loop.Tick(nil)
	res := loop.Tick([]Event{KeyDown("f"), KeyDown("j"), KeyDown(" "), KeyDown("f")})
	require.Len(t, res, 1)
	st := loop.Stats()
	assert.Equal(t, 1, st.TotalResponded)
	assert.Zero(t, st.Skipped)
	assert.Equal(t, PhaseAwaiting, loop.Phase())
}

func TestQuitHonouredAfterResponseInSameBatch(t *testing.T) {
	loop, _ := newRedBlueLoop(t, 0)
	loop.Tick(nil)
	res := loop.Tick([]Event{KeyDown("f"), KeyDown("esc")})
	require.Len(t, res, 2)
	assert.Equal(t, OutcomeExited, res[1].Outcome)
	assert.Equal(t, 1, loop.Stats().Correct)
}

func TestUnboundKeysKeepTrialOpen(t *testing.T) {
	loop, clock := newRedBlueLoop(t, 1)
	loop.Tick(nil)
	first, _ := loop.Current()
	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		assert.Empty(t, loop.Tick([]Event{KeyDown("x")}))
	}
	cur, ok := loop.Current()
	require.True(t, ok)
	assert.Equal(t, first.Seq, cur.Seq)

	res := loop.Tick([]Event{KeyDown("j")})
	require.Len(t, res, 1)
	assert.Equal(t, 5*time.Second, res[0].Elapsed)
}

func TestSkipsNeverTouchResponseCounters(t *testing.T) {
	loop, _ := newRedBlueLoop(t, 0, 1, 1, 0)
	for i := 0; i < 10; i++ {
		loop.Tick([]Event{KeyDown("space")})
	}
	st := loop.Stats()
	assert.Equal(t, 10, st.Skipped)
	assert.Zero(t, st.TotalResponded)
	assert.Zero(t, st.Correct+st.Wrong)
	assert.Empty(t, st.ResponseTimes)
}

func TestCounterInvariantsHoldForRandomPlay(t *testing.T) {
	loop, clock := newRedBlueLoop(t, 0, 1, 1, 0, 1)
	player := rand.New(rand.NewSource(7))
	keys := []string{"f", "j", "space", "q"}
	for i := 0; i < 200; i++ {
		clock.Advance(time.Duration(player.Intn(900)) * time.Millisecond)
		loop.Tick([]Event{KeyDown(keys[player.Intn(len(keys))])})

		st := loop.Stats()
		require.Equal(t, st.TotalResponded, st.Correct+st.Wrong)
		require.Len(t, st.ResponseTimes, st.TotalResponded)
		if st.TotalResponded > 0 {
			acc := stats.Accuracy(st.Correct, st.Wrong)
			require.GreaterOrEqual(t, acc, 0.0)
			require.LessOrEqual(t, acc, 100.0)
		}
		require.GreaterOrEqual(t, stats.AverageResponse(st.ResponseTimes), time.Duration(0))
	}
}

func TestStatsSnapshotIsIsolated(t *testing.T) {
	loop, _ := newRedBlueLoop(t, 0)
	loop.Tick([]Event{KeyDown("f")})
	snap := loop.Stats()
	snap.ResponseTimes[0] = time.Hour
	assert.NotEqual(t, time.Hour, loop.Stats().ResponseTimes[0])
}

func TestSeededLoopsAreReproducible(t *testing.T) {
	sel, err := selection.FromNames(catalog.Shapes, []string{"circle", "star"})
	require.NoError(t, err)
	b, err := keymap.New(keymap.DefaultKeys, sel)
	require.NoError(t, err)

	sequence := func(seed int64) []string {
		loop := NewLoop(b, Options{Source: rand.NewSource(seed)})
		var names []string
		for i := 0; i < 30; i++ {
			loop.Tick(nil)
			cur, _ := loop.Current()
			names = append(names, cur.Item.Name)
			loop.Tick([]Event{KeyDown("space")})
		}
		return names
	}
	if diff := cmp.Diff(sequence(42), sequence(42)); diff != "" {
		t.Fatalf("same seed produced different stimuli (-first +second):\n%s", diff)
	}
}

func TestPresentRequiresPresentPhase(t *testing.T) {
	loop, _ := newRedBlueLoop(t, 0)
	_, err := loop.Present()
	require.NoError(t, err)
	_, err = loop.Present()
	assert.ErrorIs(t, err, ErrNotPresenting)

	_, err = loop.Handle(KeyDown("space"))
	require.NoError(t, err)
	_, err = loop.Handle(KeyDown("f"))
	assert.ErrorIs(t, err, ErrNotAwaiting)
}

func TestElapsedUsesEventArrivalTime(t *testing.T) {
	loop, clock := newRedBlueLoop(t, 0, 0)
	loop.Tick(nil)
	shown := clock.now

	clock.Advance(time.Second)
	res := loop.Tick([]Event{KeyDownAt("f", shown.Add(120*time.Millisecond))})
	require.Len(t, res, 1)
	assert.Equal(t, 120*time.Millisecond, res[0].Elapsed)

	// a zero arrival time falls back to the clock at handling time
	clock.Advance(300 * time.Millisecond)
	res = loop.Tick([]Event{KeyDown("f")})
	require.Len(t, res, 1)
	assert.Equal(t, 300*time.Millisecond, res[0].Elapsed)

	if diff := cmp.Diff([]time.Duration{120 * time.Millisecond, 300 * time.Millisecond}, loop.Stats().ResponseTimes); diff != "" {
		t.Fatalf("response times mismatch (-want +got):\n%s", diff)
	}
}
