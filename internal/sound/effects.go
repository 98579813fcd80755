package sound

import "math"

// genStart: three short beeps and a longer, higher "go".
func genStart() []byte {
	beep := int(0.12 * SampleRate)
	gap := int(0.18 * SampleRate)
	goLen := int(0.35 * SampleRate)
	total := 3*(beep+gap) + goLen
	mix := make([]float64, total)

	tone := func(start, n int, freq, gain float64) {
		for j := 0; j < n; j++ {
			t := float64(j) / SampleRate
			env := adsr(float64(j)/float64(n), 0.02, 0.3, 0.6, 0.2)
			mix[start+j] += (math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*freq*2*t)) * env * gain
		}
	}
	for i := 0; i < 3; i++ {
		tone(i*(beep+gap), beep, 587.33, 0.35) // D5
	}
	tone(3*(beep+gap), goLen, 1174.66, 0.4) // D6
	return render(mix)
}

// pickupRoots transposes the pickup arpeggio per power-up kind.
var pickupRoots = []float64{523.25, 587.33, 659.25, 440.00} // C5 D5 E5 A4

// genPickup: four-note major arpeggio of FM bells.
func genPickup(variant int) []byte {
	root := pickupRoots[0]
	if variant >= 0 && variant < len(pickupRoots) {
		root = pickupRoots[variant]
	}
	freqs := []float64{root, root * 1.26, root * 1.498, root * 2}
	noteLen := SampleRate * 75 / 1000
	tail := int(0.18 * SampleRate)
	total := len(freqs)*noteLen + tail
	mix := make([]float64, total)

	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.55, 0.05, 0.35)
			s := fm(t, freq, 2.756, 5.0*env) * env * 0.38
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.09
			mix[start+j] += s
		}
	}
	return render(mix)
}

// genClick: crisp click sweeping from one pitch to another.
func genClick(from, to float64) []byte {
	n := SampleRate * 65 / 1000
	mix := make([]float64, n)
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := from + (to-from)*p
		mix[i] = fm(t, freq, 1.0, 0.6) * env * 0.38
	}
	return render(mix)
}

// genFanfare: ascending FM bell staircase, each note ringing over the next.
func genFanfare() []byte {
	notes := []float64{440, 554.37, 659.25, 880, 1108.73}
	noteStep := int(0.09 * SampleRate)
	total := len(notes)*noteStep + int(0.25*SampleRate)
	mix := make([]float64, total)

	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.65, 0.04, 0.28)
			s := fm(t, freq, 3.5, 5.5*env) * env * 0.28
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}
	return render(mix)
}

// genAbort: staggered descending minor chord.
func genAbort() []byte {
	n := int(0.6 * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.12}, // C4
		{220.00, 0.24}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += s
		}
	}
	return render(mix)
}
