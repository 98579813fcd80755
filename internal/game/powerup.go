package game

type PowerUpKind int

const (
	PowerMissile PowerUpKind = iota
	PowerShield
	PowerTurbo
	PowerOil

	PowerUpKindCount // must stay last
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerMissile:
		return "missile"
	case PowerShield:
		return "shield"
	case PowerTurbo:
		return "turbo"
	case PowerOil:
		return "oil"
	}
	return "unknown"
}

// Glyph is the single-letter icon drawn on top of the marker.
func (k PowerUpKind) Glyph() string {
	switch k {
	case PowerMissile:
		return "M"
	case PowerShield:
		return "S"
	case PowerTurbo:
		return "T"
	case PowerOil:
		return "O"
	}
	return "?"
}

// Marker is a collectible power-up. Collected flips at most once.
type Marker struct {
	X, Y        float64
	Kind        PowerUpKind
	Collected   bool
	CollectedBy int // kart index, valid only when Collected
}

// GeneratePowerUps scatters count markers uniformly over the world inset by
// PowerUpInset on every edge, with a uniformly drawn kind.
func GeneratePowerUps(r *Rand, count int, width, height float64) []Marker {
	markers := make([]Marker, 0, count)
	for i := 0; i < count; i++ {
		x := r.RangeF(PowerUpInset, width-PowerUpInset)
		y := r.RangeF(PowerUpInset, height-PowerUpInset)
		kind := PowerUpKind(r.Intn(int(PowerUpKindCount)))
		markers = append(markers, Marker{X: x, Y: y, Kind: kind})
	}
	return markers
}

// Collector decides whether a kart picks up one of the markers this tick.
// It returns the index of the collected marker.
type Collector interface {
	Near(k Kart, markers []Marker) (int, bool)
}

// ProximityCollector collects the nearest uncollected marker whose center is
// within Radius of the kart center.
type ProximityCollector struct {
	Radius float64
}

func (pc ProximityCollector) Near(k Kart, markers []Marker) (int, bool) {
	best := -1
	bestD2 := pc.Radius * pc.Radius
	for i := range markers {
		m := &markers[i]
		if m.Collected {
			continue
		}
		dx := m.X - k.X
		dy := m.Y - k.Y
		if d2 := dx*dx + dy*dy; d2 <= bestD2 {
			bestD2 = d2
			best = i
		}
	}
	return best, best >= 0
}

// RemainingPowerUps counts markers that have not been collected.
func RemainingPowerUps(markers []Marker) int {
	n := 0
	for i := range markers {
		if !markers[i].Collected {
			n++
		}
	}
	return n
}
