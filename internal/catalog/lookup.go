package catalog

import "strings"

func CarByID(id int) (Car, bool) {
	for _, c := range Cars {
		if c.ID == id {
			return c, true
		}
	}
	return Car{}, false
}

func TrackByID(id int) (Track, bool) {
	for _, t := range Tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

func PowerByID(id int) (Power, bool) {
	for _, p := range Powers {
		if p.ID == id {
			return p, true
		}
	}
	return Power{}, false
}

// Parts returns the option table for a part kind.
func Parts(kind PartKind) []Part {
	switch kind {
	case PartColor:
		return Colors
	case PartWheels:
		return Wheels
	case PartEngine:
		return Engines
	case PartSticker:
		return Stickers
	}
	return nil
}

// FindPart looks an option up by value, case-insensitively.
func FindPart(kind PartKind, value string) (Part, bool) {
	for _, p := range Parts(kind) {
		if strings.EqualFold(p.Value, value) {
			return p, true
		}
	}
	return Part{}, false
}

func ParsePartKind(s string) (PartKind, bool) {
	switch strings.ToLower(s) {
	case "color", "colour":
		return PartColor, true
	case "wheels", "wheel":
		return PartWheels, true
	case "engine":
		return PartEngine, true
	case "sticker", "stickers":
		return PartSticker, true
	}
	return 0, false
}

// Stats are the garage display values of a car.
type Stats struct {
	Speed        int
	Acceleration int
	Handling     int
}

// EffectiveStats adds the wheel and engine bonuses to the car's base stats.
// Unknown part values contribute nothing.
func EffectiveStats(c Car, wheels, engine string) Stats {
	s := Stats{Speed: c.Speed, Acceleration: c.Acceleration, Handling: c.Handling}
	if w, ok := FindPart(PartWheels, wheels); ok {
		s.Speed += w.Speed
		s.Handling += w.Handling
	}
	if e, ok := FindPart(PartEngine, engine); ok {
		s.Speed += e.Speed
		s.Acceleration += e.Acceleration
	}
	return s
}
