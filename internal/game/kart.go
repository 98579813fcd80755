package game

import "math"

// Tuning holds the per-kart physics constants.
type Tuning struct {
	MaxSpeed float64
	Accel    float64
	Friction float64
}

// DefaultTuning is used for every car; catalog stats are display-only.
var DefaultTuning = Tuning{
	MaxSpeed: KartMaxSpeed,
	Accel:    KartAccel,
	Friction: KartFriction,
}

// Kart is one competitor. VX/VY are derived from Speed and Heading every
// tick and are never an input to Step.
type Kart struct {
	X, Y    float64
	Heading float64 // degrees, not normalized
	Speed   float64 // negative = reverse
	VX, VY  float64
	Tuning  Tuning
}

func NewKart(x, y, heading float64, t Tuning) Kart {
	return Kart{X: x, Y: y, Heading: heading, Tuning: t}
}

// Bounds is the rectangle kart centers are confined to.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// WorldBounds returns the wall rectangle for a world of the given size.
func WorldBounds(width, height float64) Bounds {
	return Bounds{
		MinX: WallInset,
		MinY: WallInset,
		MaxX: width - WallInset,
		MaxY: height - WallInset,
	}
}

// Step advances a kart by one tick. Walls stop the kart's position but keep
// its speed, so a kart pressing into a wall loses distance, not momentum.
func Step(k Kart, c Controls, b Bounds) Kart {
	t := k.Tuning

	if c.Forward {
		k.Speed = math.Min(k.Speed+t.Accel, t.MaxSpeed)
	}
	if c.Back {
		k.Speed = math.Max(k.Speed-t.Accel, -t.MaxSpeed/2)
	}

	// Steering authority scales with speed; a stopped kart cannot turn.
	if k.Speed != 0 && t.MaxSpeed > 0 {
		ratio := k.Speed / t.MaxSpeed
		if c.Left {
			k.Heading -= TurnRate * ratio
		}
		if c.Right {
			k.Heading += TurnRate * ratio
		}
	}

	k.Speed *= 1 - t.Friction

	rad := degToRad(k.Heading)
	k.VX = math.Cos(rad) * k.Speed
	k.VY = math.Sin(rad) * k.Speed

	k.X = clampF(k.X+k.VX, b.MinX, b.MaxX)
	k.Y = clampF(k.Y+k.VY, b.MinY, b.MaxY)
	return k
}
