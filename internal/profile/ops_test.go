package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kart/internal/catalog"
	"kart/internal/game"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, 500, p.Coins)
	assert.Equal(t, []int{1, 2}, p.UnlockedTracks)
	assert.Equal(t, []int{1, 2}, p.UnlockedCars)
	assert.Equal(t, 1, p.SelectedCar)
	assert.Equal(t, []int{1, 2}, p.OwnedPowers)
	assert.Equal(t, []int{1, 2}, p.EquippedPowers)
	assert.False(t, p.CompletedTutorial)

	p.UnlockedCars[0] = 99
	assert.Equal(t, []int{1, 2}, catalog.StartingCars, "default does not alias the catalog")
}

func TestBuyCar(t *testing.T) {
	p := Default()
	require.ErrorIs(t, p.BuyCar(2), ErrAlreadyOwned)
	require.ErrorIs(t, p.BuyCar(42), ErrUnknownItem)

	require.NoError(t, p.BuyCar(3))
	assert.Equal(t, 0, p.Coins)
	assert.True(t, p.OwnsCar(3))

	p = Default()
	p.Coins = 499
	err := p.BuyCar(3)
	require.ErrorIs(t, err, ErrInsufficientCoins)
	assert.Equal(t, 499, p.Coins)
	assert.False(t, p.OwnsCar(3))
}

func TestSelectCar(t *testing.T) {
	p := Default()
	require.NoError(t, p.SelectCar(2))
	assert.Equal(t, 2, p.SelectedCar)
	assert.ErrorIs(t, p.SelectCar(3), ErrNotOwned)
	assert.ErrorIs(t, p.SelectCar(0), ErrUnknownItem)
}

func TestBuyPart(t *testing.T) {
	p := Default()

	require.NoError(t, p.BuyPart(2, catalog.PartColor, "#9B59B6"))
	assert.Equal(t, 450, p.Coins)
	assert.Equal(t, 2, p.SelectedCar)
	assert.Equal(t, game.RGB{R: 0x9B, G: 0x59, B: 0xB6}, p.KartColor())

	require.ErrorIs(t, p.BuyPart(2, catalog.PartColor, "#9b59b6"), ErrAlreadyOwned)
	assert.Equal(t, 450, p.Coins)

	require.NoError(t, p.BuyPart(2, catalog.PartEngine, "nitro"))
	assert.Equal(t, 50, p.Coins)
	stats, ok := p.Stats(2)
	require.True(t, ok)
	assert.Equal(t, catalog.Stats{Speed: 110, Acceleration: 110, Handling: 85}, stats)

	require.NoError(t, p.BuyPart(2, catalog.PartSticker, "heart"))
	assert.Equal(t, []string{"lightning", "heart"}, p.CustomizationFor(2).Stickers)
	car, _ := catalog.CarByID(2)
	assert.Equal(t, []string{"lightning"}, car.Stickers, "catalog untouched")

	assert.ErrorIs(t, p.BuyPart(2, catalog.PartWheels, "premium"), ErrInsufficientCoins)
	assert.Equal(t, "sport", p.CustomizationFor(2).Wheels)
	assert.ErrorIs(t, p.BuyPart(3, catalog.PartWheels, "basic"), ErrNotOwned)
	assert.ErrorIs(t, p.BuyPart(1, catalog.PartWheels, "square"), ErrUnknownItem)
}

func TestPowers(t *testing.T) {
	p := Default()
	require.ErrorIs(t, p.Equip(3), ErrNotOwned)
	require.NoError(t, p.BuyPower(3))
	assert.Equal(t, 440, p.Coins)
	require.ErrorIs(t, p.BuyPower(3), ErrAlreadyOwned)

	require.ErrorIs(t, p.Equip(1), ErrAlreadyEquipped)
	require.NoError(t, p.Equip(3))
	assert.Equal(t, []int{1, 2, 3}, p.EquippedPowers)

	require.NoError(t, p.BuyPower(4))
	require.ErrorIs(t, p.Equip(4), ErrEquipLimit)

	require.NoError(t, p.Unequip(2))
	require.ErrorIs(t, p.Unequip(2), ErrNotEquipped)
	require.NoError(t, p.Equip(4))
	assert.Equal(t, []int{1, 3, 4}, p.EquippedPowers)
	assert.ErrorIs(t, p.Equip(77), ErrUnknownItem)
}

func TestCheckTrack(t *testing.T) {
	p := Default()
	tr, err := p.CheckTrack(2)
	require.NoError(t, err)
	assert.Equal(t, "forest", tr.Theme)

	_, err = p.CheckTrack(3)
	assert.ErrorIs(t, err, ErrLocked)
	_, err = p.CheckTrack(9)
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestApplyResult(t *testing.T) {
	p := Default()

	assert.True(t, p.ApplyResult(1, game.Result{CoinsEarned: 100, Position: 1, BestTime: 80 * time.Second, NewBest: true}))
	assert.Equal(t, 600, p.Coins)
	assert.Equal(t, 1, p.TotalRaces)
	assert.Equal(t, 1, p.Victories)
	assert.Equal(t, 80*time.Second, p.BestTimes[1])

	assert.True(t, p.ApplyResult(1, game.Result{CoinsEarned: 25, Position: 3, BestTime: 90 * time.Second, NewBest: true}))
	assert.Equal(t, 80*time.Second, p.BestTimes[1], "slower time never replaces the best")
	assert.Equal(t, 2, p.TotalRaces)
	assert.Equal(t, 1, p.Victories)

	assert.False(t, p.ApplyResult(1, game.Result{Aborted: true, Position: 1}))
	assert.False(t, p.ApplyResult(2, game.Result{}))
	assert.Equal(t, 625, p.Coins)
}

func TestClone(t *testing.T) {
	p := Default()
	require.NoError(t, p.BuyPart(1, catalog.PartSticker, "star"))
	p.BestTimes[1] = time.Minute

	q := p.Clone()
	q.UnlockedTracks[0] = 4
	q.BestTimes[1] = time.Second
	c := q.Customization[1]
	c.Stickers[0] = "skull"

	assert.Equal(t, 1, p.UnlockedTracks[0])
	assert.Equal(t, time.Minute, p.BestTimes[1])
	assert.Equal(t, "star", p.Customization[1].Stickers[0])
}
