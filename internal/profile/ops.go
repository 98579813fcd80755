package profile

import (
	"fmt"
	"slices"
	"time"

	"kart/internal/catalog"
	"kart/internal/game"
)

func (p *Profile) spend(price int) error {
	if price > p.Coins {
		return fmt.Errorf("need %d, have %d: %w", price, p.Coins, ErrInsufficientCoins)
	}
	p.Coins -= price
	return nil
}

// BuyCar unlocks a car for its price.
func (p *Profile) BuyCar(id int) error {
	car, ok := catalog.CarByID(id)
	if !ok {
		return fmt.Errorf("car %d: %w", id, ErrUnknownItem)
	}
	if p.OwnsCar(id) {
		return fmt.Errorf("car %q: %w", car.Name, ErrAlreadyOwned)
	}
	if err := p.spend(car.Price); err != nil {
		return fmt.Errorf("buy car %q: %w", car.Name, err)
	}
	p.UnlockedCars = append(p.UnlockedCars, id)
	return nil
}

func (p *Profile) SelectCar(id int) error {
	if _, ok := catalog.CarByID(id); !ok {
		return fmt.Errorf("car %d: %w", id, ErrUnknownItem)
	}
	if !p.OwnsCar(id) {
		return fmt.Errorf("car %d: %w", id, ErrNotOwned)
	}
	p.SelectedCar = id
	return nil
}

// BuyPart buys a customization part, fits it to an owned car and selects
// that car. Refitting the part already on the car costs nothing and
// returns ErrAlreadyOwned.
func (p *Profile) BuyPart(carID int, kind catalog.PartKind, value string) error {
	if _, ok := catalog.CarByID(carID); !ok {
		return fmt.Errorf("car %d: %w", carID, ErrUnknownItem)
	}
	if !p.OwnsCar(carID) {
		return fmt.Errorf("car %d: %w", carID, ErrNotOwned)
	}
	part, ok := catalog.FindPart(kind, value)
	if !ok {
		return fmt.Errorf("%s %q: %w", kind, value, ErrUnknownItem)
	}

	c := p.CustomizationFor(carID)
	switch kind {
	case catalog.PartColor:
		if c.BaseColor == part.Value {
			return fmt.Errorf("%s %q: %w", kind, part.Name, ErrAlreadyOwned)
		}
		c.BaseColor = part.Value
	case catalog.PartWheels:
		if c.Wheels == part.Value {
			return fmt.Errorf("%s %q: %w", kind, part.Name, ErrAlreadyOwned)
		}
		c.Wheels = part.Value
	case catalog.PartEngine:
		if c.Engine == part.Value {
			return fmt.Errorf("%s %q: %w", kind, part.Name, ErrAlreadyOwned)
		}
		c.Engine = part.Value
	case catalog.PartSticker:
		if slices.Contains(c.Stickers, part.Value) {
			return fmt.Errorf("%s %q: %w", kind, part.Name, ErrAlreadyOwned)
		}
		c.Stickers = append(slices.Clone(c.Stickers), part.Value)
	}

	if err := p.spend(part.Price); err != nil {
		return fmt.Errorf("buy %s %q: %w", kind, part.Name, err)
	}
	if p.Customization == nil {
		p.Customization = make(map[int]Customization)
	}
	p.Customization[carID] = c
	p.SelectedCar = carID
	return nil
}

func (p *Profile) BuyPower(id int) error {
	pw, ok := catalog.PowerByID(id)
	if !ok {
		return fmt.Errorf("power %d: %w", id, ErrUnknownItem)
	}
	if p.OwnsPower(id) {
		return fmt.Errorf("power %q: %w", pw.Name, ErrAlreadyOwned)
	}
	if err := p.spend(pw.Price); err != nil {
		return fmt.Errorf("buy power %q: %w", pw.Name, err)
	}
	p.OwnedPowers = append(p.OwnedPowers, id)
	return nil
}

// Equip puts an owned power into a free slot.
func (p *Profile) Equip(id int) error {
	if _, ok := catalog.PowerByID(id); !ok {
		return fmt.Errorf("power %d: %w", id, ErrUnknownItem)
	}
	if !p.OwnsPower(id) {
		return fmt.Errorf("power %d: %w", id, ErrNotOwned)
	}
	if p.Equipped(id) {
		return fmt.Errorf("power %d: %w", id, ErrAlreadyEquipped)
	}
	if len(p.EquippedPowers) >= catalog.MaxEquippedPowers {
		return ErrEquipLimit
	}
	p.EquippedPowers = append(p.EquippedPowers, id)
	return nil
}

func (p *Profile) Unequip(id int) error {
	i := slices.Index(p.EquippedPowers, id)
	if i < 0 {
		return fmt.Errorf("power %d: %w", id, ErrNotEquipped)
	}
	p.EquippedPowers = slices.Delete(p.EquippedPowers, i, i+1)
	return nil
}

func (p *Profile) CompleteTutorial() {
	p.CompletedTutorial = true
}

// CheckTrack returns the track if it exists and is unlocked.
func (p *Profile) CheckTrack(id int) (catalog.Track, error) {
	t, ok := catalog.TrackByID(id)
	if !ok {
		return catalog.Track{}, fmt.Errorf("track %d: %w", id, ErrUnknownItem)
	}
	if !p.TrackUnlocked(id) {
		return catalog.Track{}, fmt.Errorf("track %q: %w", t.Name, ErrLocked)
	}
	return t, nil
}

// ApplyResult records a finished race. Only rewarded races count towards the
// race total; a best time is stored only when it beats the previous one.
// It reports whether anything changed.
func (p *Profile) ApplyResult(trackID int, res game.Result) bool {
	if res.Aborted {
		return false
	}
	changed := false
	if res.CoinsEarned > 0 {
		p.Coins += res.CoinsEarned
		p.TotalRaces++
		if res.Position == 1 {
			p.Victories++
		}
		changed = true
	}
	if res.NewBest && res.BestTime > 0 {
		prev, ok := p.BestTimes[trackID]
		if !ok || res.BestTime < prev {
			if p.BestTimes == nil {
				p.BestTimes = make(map[int]time.Duration)
			}
			p.BestTimes[trackID] = res.BestTime
			changed = true
		}
	}
	return changed
}
