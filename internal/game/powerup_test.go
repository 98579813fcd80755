package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePowerUps_InsideInset(t *testing.T) {
	markers := GeneratePowerUps(NewRand(7), 500, WorldWidth, WorldHeight)
	require.Len(t, markers, 500)

	seen := make(map[PowerUpKind]bool)
	for _, m := range markers {
		assert.GreaterOrEqual(t, m.X, PowerUpInset)
		assert.LessOrEqual(t, m.X, WorldWidth-PowerUpInset)
		assert.GreaterOrEqual(t, m.Y, PowerUpInset)
		assert.LessOrEqual(t, m.Y, WorldHeight-PowerUpInset)
		assert.False(t, m.Collected)
		require.Less(t, int(m.Kind), int(PowerUpKindCount))
		seen[m.Kind] = true
	}
	assert.Len(t, seen, int(PowerUpKindCount))
}

func TestGeneratePowerUps_Deterministic(t *testing.T) {
	a := GeneratePowerUps(NewRand(99), PowerUpCount, WorldWidth, WorldHeight)
	b := GeneratePowerUps(NewRand(99), PowerUpCount, WorldWidth, WorldHeight)
	c := GeneratePowerUps(NewRand(100), PowerUpCount, WorldWidth, WorldHeight)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestProximityCollector(t *testing.T) {
	markers := []Marker{
		{X: 130, Y: 300, Kind: PowerTurbo},
		{X: 110, Y: 300, Kind: PowerOil, Collected: true},
		{X: 115, Y: 305, Kind: PowerShield},
		{X: 400, Y: 300, Kind: PowerMissile},
	}
	k := NewKart(100, 300, 0, DefaultTuning)
	pc := ProximityCollector{Radius: CollectRadius}

	idx, ok := pc.Near(k, markers)
	require.True(t, ok)
	assert.Equal(t, 2, idx, "nearest uncollected wins")

	markers[2].Collected = true
	idx, ok = pc.Near(k, markers)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	markers[0].Collected = true
	_, ok = pc.Near(k, markers)
	assert.False(t, ok)
	assert.Equal(t, 1, RemainingPowerUps(markers))
}

func TestPowerUpKind_Glyph(t *testing.T) {
	assert.Equal(t, "M", PowerMissile.Glyph())
	assert.Equal(t, "S", PowerShield.Glyph())
	assert.Equal(t, "T", PowerTurbo.Glyph())
	assert.Equal(t, "O", PowerOil.Glyph())
	assert.Equal(t, "?", PowerUpKindCount.Glyph())
	assert.Equal(t, "turbo", PowerTurbo.String())
}
