package game

import "time"

// FrameID identifies an outstanding frame request.
type FrameID uint64

// Scheduler is the host capability the session uses to chain frames and to
// delay the end-of-race callback.
type Scheduler interface {
	// RequestFrame runs fn once on the next host frame.
	RequestFrame(fn func()) FrameID
	// CancelFrame drops a request that has not run yet. Unknown ids are ignored.
	CancelFrame(id FrameID)
	// After runs fn once d has elapsed on the scheduler clock.
	After(d time.Duration, fn func())
}

type frameReq struct {
	id FrameID
	fn func()
}

type timerReq struct {
	at  time.Time
	seq uint64
	fn  func()
}

// FrameQueue is a Scheduler driven by its host loop: call RunFrame once per
// display refresh and Advance with the current time. All callbacks run on the
// goroutine calling RunFrame/Advance. Not safe for concurrent use.
type FrameQueue struct {
	now    time.Time
	nextID FrameID
	seq    uint64
	frames []frameReq
	timers []timerReq
}

func NewFrameQueue(now time.Time) *FrameQueue {
	return &FrameQueue{now: now}
}

func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.nextID++
	q.frames = append(q.frames, frameReq{id: q.nextID, fn: fn})
	return q.nextID
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	for i := range q.frames {
		if q.frames[i].id == id {
			q.frames = append(q.frames[:i], q.frames[i+1:]...)
			return
		}
	}
}

func (q *FrameQueue) After(d time.Duration, fn func()) {
	q.seq++
	q.timers = append(q.timers, timerReq{at: q.now.Add(d), seq: q.seq, fn: fn})
}

// Outstanding returns the number of frame requests waiting to run.
func (q *FrameQueue) Outstanding() int { return len(q.frames) }

// PendingTimers returns the number of delayed callbacks not yet fired.
func (q *FrameQueue) PendingTimers() int { return len(q.timers) }

// Now returns the scheduler clock.
func (q *FrameQueue) Now() time.Time { return q.now }

// RunFrame runs every request made before this call. Requests made by the
// callbacks themselves wait for the next RunFrame. Returns how many ran.
func (q *FrameQueue) RunFrame() int {
	batch := q.frames
	q.frames = nil
	for _, f := range batch {
		f.fn()
	}
	return len(batch)
}

// Advance moves the clock forward and fires due timers in deadline order.
// The clock never moves backwards.
func (q *FrameQueue) Advance(now time.Time) {
	if now.After(q.now) {
		q.now = now
	}
	for {
		due := -1
		for i := range q.timers {
			if q.timers[i].at.After(q.now) {
				continue
			}
			if due < 0 || q.timers[i].at.Before(q.timers[due].at) ||
				(q.timers[i].at.Equal(q.timers[due].at) && q.timers[i].seq < q.timers[due].seq) {
				due = i
			}
		}
		if due < 0 {
			return
		}
		t := q.timers[due]
		q.timers = append(q.timers[:due], q.timers[due+1:]...)
		t.fn()
	}
}

// NextDeadline returns the earliest timer deadline, if any.
func (q *FrameQueue) NextDeadline() (time.Time, bool) {
	if len(q.timers) == 0 {
		return time.Time{}, false
	}
	at := q.timers[0].at
	for _, t := range q.timers[1:] {
		if t.at.Before(at) {
			at = t.at
		}
	}
	return at, true
}
