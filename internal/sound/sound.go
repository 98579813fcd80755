// Package sound synthesizes the race sound effects as interleaved stereo
// float32 little-endian PCM at SampleRate.
package sound

import (
	"io"
	"math"
	"time"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	frameBytes   = 8 // two float32 channels
)

type Kind int

const (
	Start Kind = iota
	Pickup
	Pause
	Resume
	Finish
	Abort
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case Pickup:
		return "pickup"
	case Pause:
		return "pause"
	case Resume:
		return "resume"
	case Finish:
		return "finish"
	case Abort:
		return "abort"
	}
	return "unknown"
}

// Generate renders an effect. variant picks a per-effect flavour, e.g. the
// power-up kind for Pickup; unknown kinds return nil.
func Generate(kind Kind, variant int) []byte {
	switch kind {
	case Start:
		return genStart()
	case Pickup:
		return genPickup(variant)
	case Pause:
		return genClick(1400, 700)
	case Resume:
		return genClick(700, 1400)
	case Finish:
		return genFanfare()
	case Abort:
		return genAbort()
	}
	return nil
}

// Duration returns the play time of a generated buffer.
func Duration(buf []byte) time.Duration {
	frames := len(buf) / frameBytes
	return time.Duration(frames) * time.Second / SampleRate
}

// Reader streams a generated buffer once.
type Reader struct {
	data []byte
	pos  int
}

func NewReader(buf []byte) *Reader { return &Reader{data: buf} }

func (r *Reader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// Sample decodes the left channel of frame i.
func Sample(buf []byte, i int) float64 {
	o := i * frameBytes
	v := uint32(buf[o]) | uint32(buf[o+1])<<8 | uint32(buf[o+2])<<16 | uint32(buf[o+3])<<24
	return float64(math.Float32frombits(v))
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	o := i * frameBytes
	buf[o] = byte(v)
	buf[o+1] = byte(v >> 8)
	buf[o+2] = byte(v >> 16)
	buf[o+3] = byte(v >> 24)
	copy(buf[o+4:o+8], buf[o:o+4])
}

// softSat is a gentle saturator that keeps output inside [-1,1].
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

func makeBuf(n int) []byte { return make([]byte, n*frameBytes) }

// render saturates a mono mix into a stereo buffer.
func render(mix []float64) []byte {
	buf := makeBuf(len(mix))
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
