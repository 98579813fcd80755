// Package catalog holds the fixed tables of cars, tracks, powers,
// customization parts and tutorial steps.
package catalog

import (
	"time"

	"kart/internal/game"
)

type Car struct {
	ID           int
	Name         string
	BaseColor    string
	Wheels       string
	Engine       string
	Stickers     []string
	Speed        int
	Acceleration int
	Handling     int
	Price        int
}

type Track struct {
	ID         int
	Name       string
	Theme      string
	Difficulty string
	Obstacles  []string
	Shortcuts  int
}

// Info converts the track into the descriptor a race session takes.
func (t Track) Info() game.TrackInfo {
	return game.TrackInfo{
		ID:         t.ID,
		Name:       t.Name,
		Theme:      t.Theme,
		Difficulty: t.Difficulty,
		Obstacles:  append([]string(nil), t.Obstacles...),
		Shortcuts:  t.Shortcuts,
	}
}

type Power struct {
	ID          int
	Name        string
	Description string
	Price       int
	Cooldown    time.Duration
}

// Part is a purchasable customization option. Stat bonuses apply to wheels
// and engines only.
type Part struct {
	Name         string
	Value        string
	Price        int
	Speed        int
	Acceleration int
	Handling     int
}

type PartKind int

const (
	PartColor PartKind = iota
	PartWheels
	PartEngine
	PartSticker
)

func (k PartKind) String() string {
	switch k {
	case PartColor:
		return "color"
	case PartWheels:
		return "wheels"
	case PartEngine:
		return "engine"
	case PartSticker:
		return "sticker"
	}
	return "unknown"
}

type TutorialStep struct {
	ID          int
	Title       string
	Description string
	Action      string
}

var Cars = []Car{
	{ID: 1, Name: "Speedster", BaseColor: "#FF6B6B", Wheels: "racing", Engine: "basic",
		Speed: 80, Acceleration: 70, Handling: 60, Price: 0},
	{ID: 2, Name: "Thunder Bolt", BaseColor: "#4ECDC4", Wheels: "sport", Engine: "turbo",
		Stickers: []string{"lightning"}, Speed: 90, Acceleration: 85, Handling: 75, Price: 200},
	{ID: 3, Name: "Night Rider", BaseColor: "#2C3E50", Wheels: "premium", Engine: "racing",
		Stickers: []string{"flame", "star"}, Speed: 95, Acceleration: 80, Handling: 85, Price: 500},
}

var Tracks = []Track{
	{ID: 1, Name: "Neon City", Theme: "city", Difficulty: "easy",
		Obstacles: []string{"traffic", "ramps"}, Shortcuts: 2},
	{ID: 2, Name: "Enchanted Forest", Theme: "forest", Difficulty: "medium",
		Obstacles: []string{"trees", "logs", "mushrooms"}, Shortcuts: 3},
	{ID: 3, Name: "Scorching Desert", Theme: "desert", Difficulty: "hard",
		Obstacles: []string{"cacti", "sand_storms", "rocks"}, Shortcuts: 1},
	{ID: 4, Name: "Space Station", Theme: "space", Difficulty: "expert",
		Obstacles: []string{"asteroids", "zero_gravity", "lasers"}, Shortcuts: 4},
}

var Powers = []Power{
	{ID: 1, Name: "Missile", Description: "Fires a homing missile", Price: 50, Cooldown: 3 * time.Second},
	{ID: 2, Name: "Shield", Description: "Protects against attacks", Price: 75, Cooldown: 5 * time.Second},
	{ID: 3, Name: "Turbo", Description: "Temporary speed boost", Price: 60, Cooldown: 4 * time.Second},
	{ID: 4, Name: "Oil Slick", Description: "Leaves oil puddles on the track", Price: 40, Cooldown: 2500 * time.Millisecond},
	{ID: 5, Name: "Teleport", Description: "Jumps ahead on the track", Price: 100, Cooldown: 6 * time.Second},
}

var (
	Colors = []Part{
		{Name: "Red", Value: "#FF6B6B", Price: 0},
		{Name: "Blue", Value: "#4ECDC4", Price: 25},
		{Name: "Green", Value: "#45B7D1", Price: 25},
		{Name: "Yellow", Value: "#FFA07A", Price: 30},
		{Name: "Purple", Value: "#9B59B6", Price: 50},
		{Name: "Black", Value: "#2C3E50", Price: 75},
	}
	Wheels = []Part{
		{Name: "Basic", Value: "basic", Price: 0},
		{Name: "Sport", Value: "sport", Price: 100, Speed: 5, Handling: 10},
		{Name: "Racing", Value: "racing", Price: 200, Speed: 15, Handling: 5},
		{Name: "Premium", Value: "premium", Price: 300, Speed: 10, Handling: 15},
	}
	Engines = []Part{
		{Name: "Basic", Value: "basic", Price: 0},
		{Name: "Turbo", Value: "turbo", Price: 150, Speed: 10, Acceleration: 15},
		{Name: "Racing", Value: "racing", Price: 250, Speed: 20, Acceleration: 10},
		{Name: "Nitro", Value: "nitro", Price: 400, Speed: 15, Acceleration: 25},
	}
	Stickers = []Part{
		{Name: "Lightning", Value: "lightning", Price: 20},
		{Name: "Flame", Value: "flame", Price: 30},
		{Name: "Star", Value: "star", Price: 25},
		{Name: "Skull", Value: "skull", Price: 40},
		{Name: "Heart", Value: "heart", Price: 15},
	}
)

// Tutorial actions.
const (
	ActionMove      = "move"
	ActionTurn      = "turn"
	ActionPower     = "power"
	ActionNitro     = "nitro"
	ActionCustomize = "customize"
)

var TutorialSteps = []TutorialStep{
	{ID: 1, Title: "Accelerate and brake", Description: "Use ↑ and ↓ to accelerate and brake", Action: ActionMove},
	{ID: 2, Title: "Steer", Description: "Use ← and → to turn left and right", Action: ActionTurn},
	{ID: 3, Title: "Use powers", Description: "Press SPACE to fire a collected power", Action: ActionPower},
	{ID: 4, Title: "Nitro", Description: "Press SHIFT for nitro", Action: ActionNitro},
	{ID: 5, Title: "Customization", Description: "Visit the garage to customize your car", Action: ActionCustomize},
}

// Starting profile contents.
var (
	StartingCoins  = 500
	StartingTracks = []int{1, 2}
	StartingCars   = []int{1, 2}
	StartingPowers = []int{1, 2}
	StartingCar    = 1
)

// MaxEquippedPowers is the number of power slots per race.
const MaxEquippedPowers = 3
