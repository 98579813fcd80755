package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kart/internal/catalog"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.db")
	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestStore_LoadDefaultWhenEmpty(t *testing.T) {
	s, _ := openTestStore(t)
	p, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestStore_SaveAndReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)

	p := Default()
	require.NoError(t, p.BuyCar(3))
	p.Coins = 321
	require.NoError(t, p.BuyPart(3, catalog.PartSticker, "skull"))
	p.CompleteTutorial()
	p.BestTimes[2] = 75*time.Second + 250*time.Millisecond
	p.TotalRaces = 4
	p.Victories = 2
	require.True(t, s.Save(ctx, p))

	p.Coins = 1
	require.True(t, s.Save(ctx, p), "second save updates in place")
	require.NoError(t, s.Close())

	s2, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	p := Default()
	p.Coins = 9000
	require.True(t, s.Save(ctx, p))

	reset, ok := s.Reset(ctx)
	require.True(t, ok)
	assert.Equal(t, Default(), reset)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 500, got.Coins)
}

func TestStore_InMemory(t *testing.T) {
	ctx := context.Background()
	s, err := Open("", zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	p := Default()
	p.Name = "Ana"
	require.True(t, s.Save(ctx, p))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
}

func TestStore_SaveFailureReportsFalse(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.Close())
	assert.False(t, s.Save(context.Background(), Default()))

	p, err := s.Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, Default(), p)
}

func TestOpen_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	_, err := Open(filepath.Join(blocker, "profile.db"), zerolog.Nop())
	assert.Error(t, err)
}
