// Package profile holds the player's persistent progress and the shop,
// garage and race-result operations on it.
package profile

import (
	"errors"
	"slices"
	"time"

	"kart/internal/catalog"
	"kart/internal/game"
)

var (
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrAlreadyOwned      = errors.New("already owned")
	ErrNotOwned          = errors.New("not owned")
	ErrAlreadyEquipped   = errors.New("already equipped")
	ErrNotEquipped       = errors.New("not equipped")
	ErrEquipLimit        = errors.New("all power slots are in use")
	ErrUnknownItem       = errors.New("unknown item")
	ErrLocked            = errors.New("locked")
)

// Customization is the look of one car.
type Customization struct {
	BaseColor string   `json:"baseColor"`
	Wheels    string   `json:"wheels"`
	Engine    string   `json:"engine"`
	Stickers  []string `json:"stickers"`
}

type Profile struct {
	ID                int
	Name              string
	Coins             int
	Level             int
	CompletedTutorial bool
	UnlockedTracks    []int
	UnlockedCars      []int
	SelectedCar       int
	OwnedPowers       []int
	EquippedPowers    []int
	Customization     map[int]Customization
	BestTimes         map[int]time.Duration
	TotalRaces        int
	Victories         int
}

// Default is the profile of a new player.
func Default() Profile {
	return Profile{
		ID:             1,
		Name:           "Player 1",
		Coins:          catalog.StartingCoins,
		Level:          1,
		UnlockedTracks: slices.Clone(catalog.StartingTracks),
		UnlockedCars:   slices.Clone(catalog.StartingCars),
		SelectedCar:    catalog.StartingCar,
		OwnedPowers:    slices.Clone(catalog.StartingPowers),
		EquippedPowers: slices.Clone(catalog.StartingPowers),
		Customization:  make(map[int]Customization),
		BestTimes:      make(map[int]time.Duration),
	}
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	q := p
	q.UnlockedTracks = slices.Clone(p.UnlockedTracks)
	q.UnlockedCars = slices.Clone(p.UnlockedCars)
	q.OwnedPowers = slices.Clone(p.OwnedPowers)
	q.EquippedPowers = slices.Clone(p.EquippedPowers)
	q.Customization = make(map[int]Customization, len(p.Customization))
	for k, v := range p.Customization {
		v.Stickers = slices.Clone(v.Stickers)
		q.Customization[k] = v
	}
	q.BestTimes = make(map[int]time.Duration, len(p.BestTimes))
	for k, v := range p.BestTimes {
		q.BestTimes[k] = v
	}
	return q
}

func (p *Profile) OwnsCar(id int) bool       { return slices.Contains(p.UnlockedCars, id) }
func (p *Profile) OwnsPower(id int) bool     { return slices.Contains(p.OwnedPowers, id) }
func (p *Profile) TrackUnlocked(id int) bool { return slices.Contains(p.UnlockedTracks, id) }
func (p *Profile) Equipped(id int) bool      { return slices.Contains(p.EquippedPowers, id) }

// CustomizationFor returns the saved look of a car, or its factory look.
func (p *Profile) CustomizationFor(carID int) Customization {
	if c, ok := p.Customization[carID]; ok {
		return c
	}
	car, _ := catalog.CarByID(carID)
	return Customization{
		BaseColor: car.BaseColor,
		Wheels:    car.Wheels,
		Engine:    car.Engine,
		Stickers:  slices.Clone(car.Stickers),
	}
}

// KartColor is the body colour of the selected car. Falls back to the
// default kart 1 colour when the stored value does not parse.
func (p *Profile) KartColor() game.RGB {
	c, err := game.ParseHexRGB(p.CustomizationFor(p.SelectedCar).BaseColor)
	if err != nil {
		return game.Palette.Kart1
	}
	return c
}

// Stats returns the garage stats of a car with its current parts.
func (p *Profile) Stats(carID int) (catalog.Stats, bool) {
	car, ok := catalog.CarByID(carID)
	if !ok {
		return catalog.Stats{}, false
	}
	c := p.CustomizationFor(carID)
	return catalog.EffectiveStats(car, c.Wheels, c.Engine), true
}
