// Package audio plays race sound effects through oto.
package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"

	"kart/internal/game"
	"kart/internal/sound"
)

const bitDepth = 0 // 32-bit float (oto.FormatFloat32LE)

// maxVoices bounds simultaneous effects to avoid clipping.
const maxVoices = 4

// Player is an oto-backed effect player. A nil *Player is silent.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	log    zerolog.Logger
	volume float64
	voices int32

	mu    sync.Mutex
	cache map[cacheKey][]byte
	wg    sync.WaitGroup
}

type cacheKey struct {
	kind    sound.Kind
	variant int
}

// New opens the audio device. volume is the effect gain in [0,1].
func New(volume float64, log zerolog.Logger) (*Player, error) {
	ctx, ready, err := oto.NewContext(sound.SampleRate, sound.ChannelCount, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	return &Player{
		ctx:    ctx,
		ready:  ready,
		log:    log,
		volume: clamp01(volume),
		cache:  make(map[cacheKey][]byte),
	}, nil
}

// Play starts an effect without blocking. It is dropped while the device is
// still starting up or when too many effects are already playing.
func (p *Player) Play(kind sound.Kind, variant int) {
	if p == nil || p.volume <= 0 {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	if atomic.AddInt32(&p.voices, 1) > maxVoices {
		atomic.AddInt32(&p.voices, -1)
		return
	}

	samples := p.samples(kind, variant)
	if len(samples) == 0 {
		atomic.AddInt32(&p.voices, -1)
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer atomic.AddInt32(&p.voices, -1)
		player := p.ctx.NewPlayer(sound.NewReader(samples))
		player.SetVolume(p.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			p.log.Debug().Err(err).Stringer("sound", kind).Msg("close player")
		}
	}()
}

func (p *Player) samples(kind sound.Kind, variant int) []byte {
	key := cacheKey{kind, variant}
	p.mu.Lock()
	defer p.mu.Unlock()
	if b, ok := p.cache[key]; ok {
		return b
	}
	b := sound.Generate(kind, variant)
	p.cache[key] = b
	return b
}

// Wait blocks until every effect started so far has finished.
func (p *Player) Wait() {
	if p == nil {
		return
	}
	p.wg.Wait()
}

// Attach subscribes the player to session events.
func (p *Player) Attach(eb *game.EventBus) {
	if p == nil || eb == nil {
		return
	}
	for t, k := range EffectFor {
		kind := k
		eb.Subscribe(t, func(e game.Event) {
			variant := 0
			if e.Type == game.EventPowerUpCollected {
				variant = e.Data
			}
			p.Play(kind, variant)
		})
	}
}

// EffectFor maps session events to the effect they trigger.
var EffectFor = map[game.EventType]sound.Kind{
	game.EventRaceStarted:      sound.Start,
	game.EventPowerUpCollected: sound.Pickup,
	game.EventPaused:           sound.Pause,
	game.EventResumed:          sound.Resume,
	game.EventRaceFinished:     sound.Finish,
	game.EventRaceAborted:      sound.Abort,
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
