package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/golden-sieve/engine"
	"github.com/lixenwraith/golden-sieve/timeline"
)

// SampleRate is the speaker and synthesis rate
const SampleRate = beep.SampleRate(44100)

// Cue durations
const (
	PhaseNoteDuration = 120 * time.Millisecond
	LockChordDuration = 600 * time.Millisecond
	FlareDuration     = 350 * time.Millisecond
	AvalancheDuration = 500 * time.Millisecond
	HeatingDuration   = 200 * time.Millisecond
	cueAttack         = 5 * time.Millisecond
	cueRelease        = 60 * time.Millisecond
)

// phaseRoots rise by the golden ratio's nearest musical steps per phase
var phaseRoots = [...]float64{
	timeline.PhaseAmorphousChaos:     220.00,
	timeline.PhaseFourDExtrusion:     261.63,
	timeline.PhaseGoldenSievingSweep: 329.63,
	timeline.PhaseTopologicalLock:    392.00,
	timeline.PhaseStableLocked:       440.00,
}

// CueFor returns the streamer for an event at linear gain vol, nil if the event is silent
func CueFor(ev engine.Event, vol float64) beep.Streamer {
	var s beep.Streamer
	switch ev.Type {
	case engine.EventPhaseChanged:
		if ev.To.Terminal() {
			s = lockChord(ev.To)
		} else {
			s = phaseArpeggio(ev.From, ev.To)
		}
	case engine.EventFlare:
		s = tone(0, WaveNoise, FlareDuration, cueAttack, FlareDuration/2, SampleRate)
	case engine.EventAvalanche:
		s = beep.Mix(
			newVolume(tone(55, WaveSaw, AvalancheDuration, cueAttack, cueRelease*4, SampleRate), 0.7),
			newVolume(tone(0, WaveNoise, AvalancheDuration, cueAttack, cueRelease*4, SampleRate), 0.3),
		)
	case engine.EventHeatingChanged:
		freq := 660.0
		if ev.Heating {
			freq = 110.0
		}
		s = tone(freq, WaveSquare, HeatingDuration, cueAttack, cueRelease, SampleRate)
	default:
		return nil
	}
	return newVolume(s, vol)
}

func rootOf(p timeline.Phase) float64 {
	if int(p) < len(phaseRoots) {
		return phaseRoots[p]
	}
	return phaseRoots[0]
}

// phaseArpeggio plays the departing root then the arriving root
func phaseArpeggio(from, to timeline.Phase) beep.Streamer {
	return beep.Seq(
		tone(rootOf(from), WaveSine, PhaseNoteDuration, cueAttack, cueRelease, SampleRate),
		tone(rootOf(to), WaveSine, PhaseNoteDuration, cueAttack, cueRelease, SampleRate),
	)
}

// lockChord is a root, fifth and octave held together
func lockChord(p timeline.Phase) beep.Streamer {
	root := rootOf(p)
	return beep.Mix(
		newVolume(chordVoice(root), 0.5),
		newVolume(chordVoice(root*1.5), 0.3),
		newVolume(chordVoice(root*2), 0.2),
	)
}

// chordVoice is a pure sine from the generator, cut to length and enveloped
// Frequencies at or above Nyquist fall back to the local oscillator
func chordVoice(freq float64) beep.Streamer {
	sine, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return tone(freq, WaveSine, LockChordDuration, cueAttack, LockChordDuration/2, SampleRate)
	}
	held := beep.Take(SampleRate.N(LockChordDuration), sine)
	return NewEnvelope(held, LockChordDuration, cueAttack, LockChordDuration/2, SampleRate)
}
