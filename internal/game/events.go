package game

type EventType int

const (
	EventRaceStarted EventType = iota
	EventPaused
	EventResumed
	EventPowerUpCollected
	EventRaceFinished // finish signal accepted, reward computed
	EventRaceAborted
	EventRaceEnded // end callback delivered
)

func (t EventType) String() string {
	switch t {
	case EventRaceStarted:
		return "race-started"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventPowerUpCollected:
		return "powerup-collected"
	case EventRaceFinished:
		return "race-finished"
	case EventRaceAborted:
		return "race-aborted"
	case EventRaceEnded:
		return "race-ended"
	}
	return "unknown"
}

type Event struct {
	Type EventType
	X, Y float64
	Kart int // kart index for per-kart events
	Data int // Generic payload (power-up kind, coins earned).
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
