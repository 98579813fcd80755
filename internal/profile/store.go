package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// record is the stored row. Sets and maps are JSON columns.
type record struct {
	ID                uint   `gorm:"primaryKey"`
	Name              string `gorm:"size:64"`
	Coins             int
	Level             int
	CompletedTutorial bool
	UnlockedTracks    datatypes.JSONSlice[int]
	UnlockedCars      datatypes.JSONSlice[int]
	SelectedCar       int
	OwnedPowers       datatypes.JSONSlice[int]
	EquippedPowers    datatypes.JSONSlice[int]
	Customization     datatypes.JSONType[map[string]Customization]
	BestTimes         datatypes.JSON // track id -> milliseconds
	TotalRaces        int
	Victories         int
	UpdatedAt         time.Time
}

func (record) TableName() string { return "profiles" }

// Store persists a single profile in SQLite.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open opens (creating if needed) the profile database at path. An empty
// path keeps the profile in memory for the life of the process.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open profile db %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql interface: %w", err)
	}
	// One connection keeps an in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&record{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate profile schema: %w", err)
	}
	if path != "" {
		log.Debug().Str("path", path).Msg("Using profile database")
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Load returns the stored profile, or the default profile when none has
// been saved yet. On a read error the default is returned with the error.
func (s *Store) Load(ctx context.Context) (Profile, error) {
	var rec record
	err := s.db.WithContext(ctx).Take(&rec, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("load profile: %w", err)
	}
	p, err := fromRecord(rec)
	if err != nil {
		return Default(), fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// Save writes the profile. Failures are logged and reported as false; the
// caller's in-memory profile stays authoritative.
func (s *Store) Save(ctx context.Context, p Profile) bool {
	rec, err := toRecord(p)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode profile")
		return false
	}
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		s.log.Error().Err(err).Msg("Failed to save profile")
		return false
	}
	return true
}

// Reset replaces the stored profile with the default one.
func (s *Store) Reset(ctx context.Context) (Profile, bool) {
	p := Default()
	return p, s.Save(ctx, p)
}

func toRecord(p Profile) (record, error) {
	cust := make(map[string]Customization, len(p.Customization))
	for id, c := range p.Customization {
		cust[strconv.Itoa(id)] = c
	}
	best := make(map[string]int64, len(p.BestTimes))
	for id, d := range p.BestTimes {
		best[strconv.Itoa(id)] = d.Milliseconds()
	}
	bestJSON, err := json.Marshal(best)
	if err != nil {
		return record{}, err
	}

	id := p.ID
	if id <= 0 {
		id = 1
	}
	return record{
		ID:                uint(id),
		Name:              p.Name,
		Coins:             p.Coins,
		Level:             p.Level,
		CompletedTutorial: p.CompletedTutorial,
		UnlockedTracks:    datatypes.NewJSONSlice(nonNil(p.UnlockedTracks)),
		UnlockedCars:      datatypes.NewJSONSlice(nonNil(p.UnlockedCars)),
		SelectedCar:       p.SelectedCar,
		OwnedPowers:       datatypes.NewJSONSlice(nonNil(p.OwnedPowers)),
		EquippedPowers:    datatypes.NewJSONSlice(nonNil(p.EquippedPowers)),
		Customization:     datatypes.NewJSONType(cust),
		BestTimes:         datatypes.JSON(bestJSON),
		TotalRaces:        p.TotalRaces,
		Victories:         p.Victories,
	}, nil
}

func fromRecord(rec record) (Profile, error) {
	p := Profile{
		ID:                int(rec.ID),
		Name:              rec.Name,
		Coins:             rec.Coins,
		Level:             rec.Level,
		CompletedTutorial: rec.CompletedTutorial,
		UnlockedTracks:    []int(rec.UnlockedTracks),
		UnlockedCars:      []int(rec.UnlockedCars),
		SelectedCar:       rec.SelectedCar,
		OwnedPowers:       []int(rec.OwnedPowers),
		EquippedPowers:    []int(rec.EquippedPowers),
		Customization:     make(map[int]Customization),
		BestTimes:         make(map[int]time.Duration),
		TotalRaces:        rec.TotalRaces,
		Victories:         rec.Victories,
	}
	for k, c := range rec.Customization.Data() {
		id, err := strconv.Atoi(k)
		if err != nil {
			return Profile{}, fmt.Errorf("customization key %q: %w", k, err)
		}
		p.Customization[id] = c
	}

	var best map[string]int64
	if len(rec.BestTimes) > 0 {
		if err := json.Unmarshal(rec.BestTimes, &best); err != nil {
			return Profile{}, fmt.Errorf("best times: %w", err)
		}
	}
	for k, ms := range best {
		id, err := strconv.Atoi(k)
		if err != nil {
			return Profile{}, fmt.Errorf("best time key %q: %w", k, err)
		}
		p.BestTimes[id] = time.Duration(ms) * time.Millisecond
	}
	return p, nil
}

func nonNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
