package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type endRecorder struct {
	calls   int
	results []Result
}

func (r *endRecorder) onEnd(res Result) {
	r.calls++
	r.results = append(r.results, res)
}

func newTestSession(t *testing.T, opts Options) (*Session, *FrameQueue, *Latch, *endRecorder) {
	t.Helper()
	q := NewFrameQueue(epoch)
	l := NewLatch()
	rec := &endRecorder{}
	if opts.Track.ID == 0 {
		opts.Track = TrackInfo{ID: 1, Name: "Circuito Urbano", Theme: "city"}
	}
	s := NewSession(opts, q, l, rec.onEnd)
	return s, q, l, rec
}

func TestSession_StartPositions(t *testing.T) {
	s, _, _, _ := newTestSession(t, Options{})

	assert.Equal(t, StateRacing, s.State())
	assert.Equal(t, Kart{X: 100, Y: 300, Tuning: DefaultTuning}, s.Kart(0))
	assert.Equal(t, Kart{X: 100, Y: 350, Tuning: DefaultTuning}, s.Kart(1))
	assert.Len(t, s.Markers(), PowerUpCount)
	assert.Equal(t, NewProgress(DefaultTotalLaps), s.Progress())
	assert.False(t, s.FramePending())
}

func TestSession_SingleOutstandingFrame(t *testing.T) {
	s, q, _, _ := newTestSession(t, Options{})

	s.Start()
	s.Start()
	s.Resume()
	assert.Equal(t, 1, q.Outstanding())

	for i := 0; i < 10; i++ {
		q.RunFrame()
		require.Equal(t, 1, q.Outstanding())
	}
	assert.Equal(t, uint64(10), s.Ticks())

	s.Pause()
	assert.Equal(t, 0, q.Outstanding())
	s.Pause()
	s.Resume()
	s.Resume()
	assert.Equal(t, 1, q.Outstanding())
}

func TestSession_PauseResumeWithoutTicksIsNoop(t *testing.T) {
	s, q, l, _ := newTestSession(t, Options{})
	l.Set(KeyArrowUp, true)
	s.Start()
	for i := 0; i < 5; i++ {
		q.RunFrame()
	}

	karts, progress, markers := s.Karts(), s.Progress(), s.Markers()
	s.Pause()
	q.RunFrame()
	q.RunFrame()
	assert.Equal(t, StatePaused, s.State())
	s.Resume()

	assert.Equal(t, karts, s.Karts())
	assert.Equal(t, progress, s.Progress())
	assert.Equal(t, markers, s.Markers())
}

func TestSession_ElapsedOnlyWhileRacing(t *testing.T) {
	s, q, _, _ := newTestSession(t, Options{})
	s.Start()
	q.RunFrame()
	elapsed := s.Progress().Elapsed

	s.TogglePause()
	for i := 0; i < 30; i++ {
		q.RunFrame()
		q.Advance(q.Now().Add(16 * time.Millisecond))
	}
	assert.Equal(t, elapsed, s.Progress().Elapsed)

	s.TogglePause()
	q.RunFrame()
	assert.Greater(t, s.Progress().Elapsed, elapsed)
}

func TestSession_FinishRewardsByPosition(t *testing.T) {
	tests := []struct {
		position int
		coins    int
	}{
		{1, 100},
		{2, 50},
		{3, 25},
		{6, 25},
	}
	for _, tt := range tests {
		s, q, _, rec := newTestSession(t, Options{})
		s.Start()
		q.RunFrame()
		s.UpdateStandings(3, tt.position)

		s.Finish()
		assert.Equal(t, StateFinished, s.State())
		assert.Equal(t, 0, q.Outstanding())
		assert.Equal(t, 0, rec.calls)

		q.Advance(epoch.Add(FinishDelay - time.Millisecond))
		assert.Equal(t, 0, rec.calls, "callback waits for the finish delay")

		s.Finish()
		q.Advance(epoch.Add(FinishDelay))
		q.Advance(epoch.Add(time.Minute))
		require.Equal(t, 1, rec.calls)
		assert.Equal(t, tt.coins, rec.results[0].CoinsEarned)
		assert.Equal(t, tt.position, rec.results[0].Position)
		assert.True(t, s.Ended())
	}
}

func TestSession_FinishFromPaused(t *testing.T) {
	s, q, _, rec := newTestSession(t, Options{})
	s.Start()
	s.Pause()
	s.Finish()
	q.Advance(epoch.Add(FinishDelay))
	require.Equal(t, 1, rec.calls)
	assert.Equal(t, 100, rec.results[0].CoinsEarned)
}

func TestSession_BestTime(t *testing.T) {
	run := func(prev time.Duration, ticks int) Result {
		s, q, _, rec := newTestSession(t, Options{PreviousBest: prev})
		s.Start()
		for i := 0; i < ticks; i++ {
			q.RunFrame()
		}
		s.Finish()
		q.Advance(epoch.Add(FinishDelay))
		require.Equal(t, 1, rec.calls)
		return rec.results[0]
	}

	res := run(0, 60)
	assert.True(t, res.NewBest)
	assert.InDelta(t, float64(time.Second), float64(res.BestTime), float64(time.Millisecond))

	res = run(10*time.Second, 60)
	assert.True(t, res.NewBest)

	res = run(500*time.Millisecond, 60)
	assert.False(t, res.NewBest)
	assert.Zero(t, res.BestTime)
}

func TestSession_Abort(t *testing.T) {
	s, q, _, rec := newTestSession(t, Options{})
	s.Start()
	q.RunFrame()
	s.Abort()

	require.Equal(t, 1, rec.calls)
	assert.True(t, rec.results[0].Aborted)
	assert.Zero(t, rec.results[0].CoinsEarned)
	assert.False(t, rec.results[0].NewBest)
	assert.Equal(t, 0, q.Outstanding())

	s.Finish()
	s.Abort()
	q.Advance(epoch.Add(time.Minute))
	assert.Equal(t, 1, rec.calls)
}

func TestSession_NilSurfaceSkipsRender(t *testing.T) {
	s, q, _, _ := newTestSession(t, Options{})
	s.SetSurface(func() Surface { return nil })
	s.Start()
	require.NotPanics(t, func() {
		q.RunFrame()
		q.RunFrame()
		s.Redraw()
	})
	assert.Equal(t, uint64(2), s.Ticks())
}

func TestSession_KartsDoNotCrossAffect(t *testing.T) {
	s, q, l, _ := newTestSession(t, Options{})
	s.Start()

	l.Set(KeyArrowUp, true)
	for i := 0; i < 20; i++ {
		q.RunFrame()
	}
	assert.Equal(t, NewKart(Kart2StartX, Kart2StartY, 0, DefaultTuning), s.Kart(1))

	l.Set(KeyW, true)
	l.Set(KeyArrowLeft, true)
	l.Set(KeyA, true)
	before := s.Karts()
	for i := 0; i < 20; i++ {
		q.RunFrame()
	}
	after := s.Karts()
	assert.Greater(t, after[0].X, before[0].X)
	assert.Greater(t, after[1].X, before[1].X)
	assert.Less(t, after[1].Heading, 0.0)
	assert.NotEqual(t, after[0], after[1])
}

func TestSession_IdenticalInputsGiveIdenticalMotion(t *testing.T) {
	s, q, l, _ := newTestSession(t, Options{})
	s.Start()

	for i := 0; i < 40; i++ {
		held := i%10 < 7
		turn := i%4 == 0
		l.Set(KeyArrowUp, held)
		l.Set(KeyW, held)
		l.Set(KeyArrowRight, turn)
		l.Set(KeyD, turn)
		q.RunFrame()
	}
	k1, k2 := s.Kart(0), s.Kart(1)
	assert.Equal(t, k1.X, k2.X)
	assert.InDelta(t, Kart2StartY-Kart1StartY, k2.Y-k1.Y, 1e-9)
	assert.Equal(t, k1.Heading, k2.Heading)
	assert.Equal(t, k1.Speed, k2.Speed)
}

func TestSession_CollectsPowerUps(t *testing.T) {
	s, q, _, _ := newTestSession(t, Options{Collector: ProximityCollector{Radius: 1e6}})
	eb := NewEventBus()
	var got []Event
	eb.Subscribe(EventPowerUpCollected, func(e Event) { got = append(got, e) })
	s.SetEvents(eb)

	s.Start()
	q.RunFrame()

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Kart)
	assert.Equal(t, 1, got[1].Kart)
	assert.Equal(t, PowerUpCount-2, RemainingPowerUps(s.Markers()))
}

func TestSession_EventsAndMarkersAreIsolated(t *testing.T) {
	s, q, _, _ := newTestSession(t, Options{})
	eb := NewEventBus()
	var types []EventType
	for _, et := range []EventType{EventRaceStarted, EventPaused, EventResumed, EventRaceFinished, EventRaceEnded} {
		eb.Subscribe(et, func(e Event) { types = append(types, e.Type) })
	}
	s.SetEvents(eb)

	m := s.Markers()
	m[0].Collected = true
	assert.False(t, s.Markers()[0].Collected)

	s.Start()
	s.Pause()
	s.Resume()
	s.Finish()
	q.Advance(epoch.Add(FinishDelay))

	assert.Equal(t, []EventType{EventRaceStarted, EventPaused, EventResumed, EventRaceFinished, EventRaceEnded}, types)
}

func TestSession_SeededMarkers(t *testing.T) {
	a, _, _, _ := newTestSession(t, Options{Seed: 5})
	b, _, _, _ := newTestSession(t, Options{Seed: 5})
	c, _, _, _ := newTestSession(t, Options{Seed: 5, Track: TrackInfo{ID: 2, Theme: "forest"}})

	assert.Equal(t, a.Markers(), b.Markers())
	assert.NotEqual(t, a.Markers(), c.Markers())
	assert.Equal(t, "forest", c.Theme().Name)
}

func TestSession_WithoutScheduler(t *testing.T) {
	tests := []struct {
		name    string
		end     func(*Session)
		coins   int
		aborted bool
	}{
		{"finish ends at once", (*Session).Finish, 100, false},
		{"abort ends at once", (*Session).Abort, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &endRecorder{}
			s := NewSession(Options{FinishDelay: time.Minute}, nil, nil, rec.onEnd)
			s.Start()
			s.Pause()
			s.Resume()
			assert.False(t, s.FramePending())

			tt.end(s)
			require.Equal(t, 1, rec.calls)
			assert.True(t, s.Ended())
			assert.Equal(t, tt.coins, rec.results[0].CoinsEarned)
			assert.Equal(t, tt.aborted, rec.results[0].Aborted)
			assert.Zero(t, s.Ticks())
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Multiplayer")
	require.NoError(t, err)
	assert.Equal(t, ModeMultiplayer, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSolo, m)

	_, err = ParseMode("battle")
	assert.Error(t, err)
}

func TestSession_HandleKey(t *testing.T) {
	s, q, _, rec := newTestSession(t, Options{})
	s.Start()

	assert.False(t, s.HandleKey(KeyArrowUp))
	assert.True(t, s.HandleKey("Escape"))
	assert.Equal(t, StatePaused, s.State())
	assert.Equal(t, "PAUSED", s.Banner())

	assert.True(t, s.HandleKey(KeyEscape))
	assert.Equal(t, StateRacing, s.State())
	assert.Empty(t, s.Banner())

	assert.True(t, s.HandleKey(KeyEnter))
	assert.Equal(t, StateFinished, s.State())
	assert.Equal(t, "FINISHED P1  +100 coins", s.Banner())

	assert.True(t, s.HandleKey(KeyQ), "abort after finish is ignored")
	q.Advance(epoch.Add(FinishDelay))
	require.Equal(t, 1, rec.calls)
	assert.False(t, rec.results[0].Aborted)
}

func TestSession_NothingDrawnAfterRacing(t *testing.T) {
	s, q, _, _ := newTestSession(t, Options{})
	r := &recorder{w: WorldWidth, h: WorldHeight}
	s.SetSurface(func() Surface { return r })
	s.Start()
	q.RunFrame()
	frames := r.count("clear")
	require.Equal(t, 1, frames)

	s.Pause()
	q.RunFrame()
	assert.Equal(t, frames, r.count("clear"), "no frame while paused")
	assert.Equal(t, "PAUSED", s.Banner())

	s.Resume()
	q.RunFrame()
	assert.Equal(t, frames+1, r.count("clear"))

	s.Finish()
	q.RunFrame()
	q.Advance(epoch.Add(FinishDelay))
	assert.Equal(t, frames+1, r.count("clear"), "no frame after finishing")
}

func TestSession_ShortFinishDelayRaised(t *testing.T) {
	s, q, _, rec := newTestSession(t, Options{FinishDelay: 100 * time.Millisecond})
	s.Start()
	s.Finish()

	q.Advance(epoch.Add(200 * time.Millisecond))
	assert.Equal(t, 0, rec.calls)
	q.Advance(epoch.Add(FinishDelay - time.Millisecond))
	assert.Equal(t, 0, rec.calls)
	q.Advance(epoch.Add(FinishDelay))
	assert.Equal(t, 1, rec.calls)
}

func TestSession_LongerFinishDelayKept(t *testing.T) {
	s, q, _, rec := newTestSession(t, Options{FinishDelay: 5 * time.Second})
	s.Start()
	s.Finish()

	q.Advance(epoch.Add(FinishDelay))
	assert.Equal(t, 0, rec.calls)
	q.Advance(epoch.Add(5 * time.Second))
	assert.Equal(t, 1, rec.calls)
}

// Pausing and resuming between ticks must leave the simulation exactly
// where an uninterrupted run with the same ticks ends up.
func TestSession_PauseCyclesMatchStraightRun(t *testing.T) {
	const ticks = 90
	straight, qa, la, _ := newTestSession(t, Options{Seed: 7})
	paused, qb, lb, _ := newTestSession(t, Options{Seed: 7})
	for _, l := range []*Latch{la, lb} {
		l.Set(KeyArrowUp, true)
		l.Set(KeyArrowLeft, true)
		l.Set(KeyW, true)
	}

	straight.Start()
	for i := 0; i < ticks; i++ {
		require.Equal(t, 1, qa.RunFrame())
	}

	paused.Start()
	for i := 0; i < ticks; i++ {
		if i%7 == 3 {
			for j := 0; j < 1+i%3; j++ {
				paused.Pause()
				assert.Equal(t, 0, qb.RunFrame(), "no tick while paused")
				paused.Resume()
			}
		}
		require.Equal(t, 1, qb.RunFrame())
	}

	assert.Equal(t, uint64(ticks), paused.Ticks())
	assert.Equal(t, straight.Karts(), paused.Karts())
	assert.Equal(t, straight.Progress(), paused.Progress())
	assert.Equal(t, straight.Markers(), paused.Markers())
}
