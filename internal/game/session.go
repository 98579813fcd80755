package game

import (
	"fmt"
	"strings"
	"time"
)

// Result is delivered to the end callback exactly once per session.
type Result struct {
	CoinsEarned int
	// BestTime is the race time when it beats the previous best for the
	// track (or there was none); NewBest reports whether it is set.
	BestTime time.Duration
	NewBest  bool
	Position int
	Elapsed  time.Duration
	Aborted  bool
}

// Options are the session-start parameters.
type Options struct {
	Track     TrackInfo
	Mode      Mode
	Seed      uint64
	TotalLaps int
	Tuning    [2]Tuning
	Colors    [2]RGB
	// PreviousBest is the stored best time for the track; zero means none.
	PreviousBest time.Duration
	// Collector picks up power-ups; nil disables collection.
	Collector Collector
	// FinishDelay is how long the result stays on screen before the end
	// callback. Values below the 3 s minimum are raised to it.
	FinishDelay time.Duration
	Caption     string
}

// Session owns every piece of state for one race. All methods must be called
// from the goroutine that drives the Scheduler.
type Session struct {
	opts    Options
	sched   Scheduler
	latch   *Latch
	surface func() Surface
	events  *EventBus
	onEnd   func(Result)

	state    GameState
	started  bool
	karts    [2]Kart
	markers  []Marker
	progress Progress
	bounds   Bounds
	theme    ThemeConfig
	colors   [2]RGB

	frame  FrameID
	armed  bool
	ticks  uint64
	ended  bool
	result Result
}

// NewSession builds the race world: karts on the start grid, a fresh
// power-up field and a zeroed clock. The loop does not run until Start.
//
// A nil sched gives a synchronous session for tests and tools: no frames are
// ever requested and Finish fires the end callback at once, ignoring
// FinishDelay. Front ends always pass a scheduler.
func NewSession(opts Options, sched Scheduler, latch *Latch, onEnd func(Result)) *Session {
	for i := range opts.Tuning {
		if opts.Tuning[i] == (Tuning{}) {
			opts.Tuning[i] = DefaultTuning
		}
	}
	if opts.FinishDelay < FinishDelay {
		opts.FinishDelay = FinishDelay
	}
	if latch == nil {
		latch = NewLatch()
	}

	colors := [2]RGB{Palette.Kart1, Palette.Kart2}
	for i, c := range opts.Colors {
		if c != (RGB{}) {
			colors[i] = c
		}
	}

	s := &Session{
		opts:     opts,
		sched:    sched,
		latch:    latch,
		onEnd:    onEnd,
		state:    StateRacing,
		progress: NewProgress(opts.TotalLaps),
		bounds:   WorldBounds(WorldWidth, WorldHeight),
		theme:    ThemeByName(opts.Track.Theme),
		colors:   colors,
	}
	s.karts[0] = NewKart(Kart1StartX, Kart1StartY, 0, opts.Tuning[0])
	s.karts[1] = NewKart(Kart2StartX, Kart2StartY, 0, opts.Tuning[1])

	r := NewRand(splitmix64(opts.Seed ^ uint64(opts.Track.ID)*0x9E3779B185EBCA87))
	s.markers = GeneratePowerUps(r, PowerUpCount, WorldWidth, WorldHeight)
	return s
}

// SetSurface installs the drawing target lookup. It is consulted every
// frame; returning nil skips rendering for that frame.
func (s *Session) SetSurface(fn func() Surface) { s.surface = fn }

// SetEvents attaches an event bus for audio and logging listeners.
func (s *Session) SetEvents(eb *EventBus) { s.events = eb }

// Start arms the frame loop. Calling it again is a no-op.
func (s *Session) Start() {
	if s.started || s.state == StateFinished {
		return
	}
	s.started = true
	s.events.Emit(Event{Type: EventRaceStarted, Data: int(s.opts.Mode)})
	s.arm()
}

// Pause stops the loop while racing. Nothing is drawn until Resume.
func (s *Session) Pause() {
	if s.state != StateRacing {
		return
	}
	s.disarm()
	s.state = StatePaused
	s.events.Emit(Event{Type: EventPaused})
}

// Resume restarts the loop while paused.
func (s *Session) Resume() {
	if s.state != StatePaused {
		return
	}
	s.state = StateRacing
	s.events.Emit(Event{Type: EventResumed})
	if s.started {
		s.arm()
	}
}

// TogglePause flips between racing and paused.
func (s *Session) TogglePause() {
	switch s.state {
	case StateRacing:
		s.Pause()
	case StatePaused:
		s.Resume()
	}
}

// Finish ends the race: the loop stops, the reward is fixed from the current
// position and the end callback fires after the finish delay.
func (s *Session) Finish() {
	if s.state == StateFinished {
		return
	}
	s.disarm()
	s.state = StateFinished

	elapsed := s.progress.Duration()
	res := Result{
		CoinsEarned: Reward(s.progress.Position),
		Position:    s.progress.Position,
		Elapsed:     elapsed,
	}
	if s.opts.PreviousBest <= 0 || elapsed < s.opts.PreviousBest {
		res.BestTime = elapsed
		res.NewBest = true
	}
	s.result = res
	s.events.Emit(Event{Type: EventRaceFinished, Data: res.CoinsEarned})

	if s.sched == nil {
		// Synchronous session: there is no clock to wait on.
		s.end()
		return
	}
	s.sched.After(s.opts.FinishDelay, s.end)
}

// Abort leaves the race without a reward. The end callback fires
// immediately with zero coins. Ignored once the race has finished.
func (s *Session) Abort() {
	if s.state == StateFinished {
		return
	}
	s.disarm()
	s.state = StateFinished
	s.result = Result{
		Position: s.progress.Position,
		Elapsed:  s.progress.Duration(),
		Aborted:  true,
	}
	s.events.Emit(Event{Type: EventRaceAborted})
	s.end()
}

// UpdateStandings sets lap and position from an external standings source.
// Values below 1 are ignored.
func (s *Session) UpdateStandings(lap, position int) {
	if s.state == StateFinished {
		return
	}
	if lap >= 1 {
		s.progress.Lap = lap
	}
	if position >= 1 {
		s.progress.Position = position
	}
}

// Redraw paints the current state without advancing it.
func (s *Session) Redraw() {
	s.render()
}

func (s *Session) State() GameState       { return s.state }
func (s *Session) Progress() Progress     { return s.progress }
func (s *Session) Kart(i int) Kart        { return s.karts[i] }
func (s *Session) Karts() [2]Kart         { return s.karts }
func (s *Session) Ticks() uint64          { return s.ticks }
func (s *Session) Options() Options       { return s.opts }
func (s *Session) Theme() ThemeConfig     { return s.theme }
func (s *Session) Ended() bool            { return s.ended }
func (s *Session) FramePending() bool     { return s.armed }
func (s *Session) Result() (Result, bool) { return s.result, s.state == StateFinished }

// Markers returns a copy of the power-up field.
func (s *Session) Markers() []Marker {
	out := make([]Marker, len(s.markers))
	copy(out, s.markers)
	return out
}

// Scene snapshots the state needed by the render pass.
func (s *Session) Scene() Scene {
	return Scene{
		Width:      WorldWidth,
		Height:     WorldHeight,
		Theme:      s.theme,
		Karts:      s.karts,
		KartColors: s.colors,
		KartLabels: [2]string{"P1", "P2"},
		Markers:    s.markers,
		Progress:   s.progress,
		Caption:    s.opts.Caption,
	}
}

// Banner is the overlay text for the current state: empty while racing.
// The session never draws it; front ends put it over the last frame.
func (s *Session) Banner() string {
	switch {
	case s.state == StatePaused:
		return "PAUSED"
	case s.state == StateFinished && s.result.Aborted:
		return "RACE ABORTED"
	case s.state == StateFinished:
		return fmt.Sprintf("FINISHED P%d  +%d coins", s.result.Position, s.result.CoinsEarned)
	}
	return ""
}

// HandleKey applies the race control keys: escape toggles pause, enter
// finishes the race and backspace or q aborts it. It reports whether the
// key was a control key.
func (s *Session) HandleKey(name string) bool {
	switch strings.ToLower(name) {
	case KeyEscape:
		s.TogglePause()
	case KeyEnter:
		s.Finish()
	case KeyBackspace, KeyQ:
		s.Abort()
	default:
		return false
	}
	return true
}

// arm requests the next frame unless one is already outstanding.
func (s *Session) arm() {
	if s.armed || s.sched == nil {
		return
	}
	s.armed = true
	s.frame = s.sched.RequestFrame(s.onFrame)
}

func (s *Session) disarm() {
	if !s.armed {
		return
	}
	s.armed = false
	if s.sched != nil {
		s.sched.CancelFrame(s.frame)
	}
}

func (s *Session) onFrame() {
	s.armed = false
	if s.state != StateRacing {
		return
	}
	s.update()
	s.render()
	s.arm()
}

// update runs one simulation tick.
func (s *Session) update() {
	controls := [2]Controls{
		ArrowControls.Sample(s.latch),
		WASDControls.Sample(s.latch),
	}
	for i := range s.karts {
		s.karts[i] = Step(s.karts[i], controls[i], s.bounds)
	}

	if s.opts.Collector != nil {
		for i := range s.karts {
			idx, ok := s.opts.Collector.Near(s.karts[i], s.markers)
			if !ok || s.markers[idx].Collected {
				continue
			}
			m := &s.markers[idx]
			m.Collected = true
			m.CollectedBy = i
			s.events.Emit(Event{Type: EventPowerUpCollected, X: m.X, Y: m.Y, Kart: i, Data: int(m.Kind)})
		}
	}

	s.progress = s.progress.Tick(TickDelta, s.karts[0])
	s.ticks++
}

func (s *Session) render() {
	if s.surface == nil {
		return
	}
	surf := s.surface()
	if surf == nil {
		return
	}
	sc := s.Scene()
	DrawFrame(surf, &sc)
}

func (s *Session) end() {
	if s.ended {
		return
	}
	s.ended = true
	s.events.Emit(Event{Type: EventRaceEnded, Data: s.result.CoinsEarned})
	if s.onEnd != nil {
		s.onEnd(s.result)
	}
}
