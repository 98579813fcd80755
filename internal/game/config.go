package game

import "time"

// World dimensions (in world pixels).
// Fixed for every track; the surface scales this to the host window.
const (
	WorldWidth  = 1200
	WorldHeight = 600
)

// Wall inset: kart centers never get closer than this to a world edge.
const WallInset = 20.0

// Track layout (in world pixels).
const (
	TrackInset   = 50.0
	HUDHeight    = 80.0
	LaneDashLen  = 10.0
	LaneDashGap  = 10.0
	LaneLineWide = 2.0
)

// Kart physics.
const (
	KartMaxSpeed = 5.0
	KartAccel    = 0.2
	KartFriction = 0.05
	TurnRate     = 3.0 // degrees per tick at full speed
)

// Kart visual.
const (
	KartLength = 30.0
	KartWidth  = 20.0
	WheelW     = 6.0
	WheelH     = 4.0
)

// Start grid.
const (
	Kart1StartX = 100.0
	Kart1StartY = 300.0
	Kart2StartX = 100.0
	Kart2StartY = 350.0
)

// Power-ups.
const (
	PowerUpCount  = 10
	PowerUpInset  = 50.0
	PowerUpRadius = 8.0
	// CollectRadius is the default pickup distance between a kart center
	// and a marker center: half a kart length plus the marker radius.
	CollectRadius = KartLength/2 + PowerUpRadius
)

// Race timing.
const (
	TickRate         = 60
	TickDelta        = 1.0 / TickRate
	DefaultTotalLaps = 3
	// SpeedDisplayFactor converts world pixels per tick to the km/h shown in the HUD.
	SpeedDisplayFactor = 20.0
	FinishDelay        = 3 * time.Second
)

// Rewards by finishing position.
const (
	RewardFirst  = 100
	RewardSecond = 50
	RewardOther  = 25
)
