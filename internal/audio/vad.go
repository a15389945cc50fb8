package audio

import "math"

// energyDetector classifies fixed-size PCM chunks as speech or silence from
// their RMS energy, with hysteresis so a single loud or quiet chunk does not
// flip the state.
type energyDetector struct {
	speechThreshold  float64 // normalized RMS to enter speech
	silenceThreshold float64 // normalized RMS to leave speech
	speechChunks     int     // consecutive speech chunks needed to start
	silenceChunks    int     // consecutive silence chunks needed to end

	inSpeech     bool
	speechCount  int
	silenceCount int
	everSpoke    bool
}

// newEnergyDetector returns a detector tuned for 16kHz chunks of ~50ms.
// silenceChunks is derived from the trailing-silence duration the caller
// wants before an utterance is considered finished.
func newEnergyDetector(silenceChunks int) *energyDetector {
	if silenceChunks < 1 {
		silenceChunks = 1
	}
	return &energyDetector{
		speechThreshold:  0.015,
		silenceThreshold: 0.008,
		speechChunks:     2,
		silenceChunks:    silenceChunks,
	}
}

// Feed consumes one chunk and reports whether the detector currently
// considers the speaker to be talking.
func (d *energyDetector) Feed(chunk []int16) bool {
	level := rms(chunk)

	if d.inSpeech {
		if level < d.silenceThreshold {
			d.silenceCount++
			d.speechCount = 0
			if d.silenceCount >= d.silenceChunks {
				d.inSpeech = false
				d.silenceCount = 0
			}
		} else {
			d.silenceCount = 0
		}
	} else {
		if level >= d.speechThreshold {
			d.speechCount++
			d.silenceCount = 0
			if d.speechCount >= d.speechChunks {
				d.inSpeech = true
				d.everSpoke = true
				d.speechCount = 0
			}
		} else {
			d.speechCount = 0
			d.silenceCount++
		}
	}

	return d.inSpeech
}

// SpeechSeen reports whether any speech has been detected. Detectors are
// created fresh per capture, so this never needs resetting.
func (d *energyDetector) SpeechSeen() bool {
	return d.everSpoke
}

// rms returns the normalized (0..1) root-mean-square level of a PCM chunk.
func rms(chunk []int16) float64 {
	if len(chunk) == 0 {
		return 0
	}
	var sum float64
	for _, s := range chunk {
		f := float64(s) / math.MaxInt16
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(chunk)))
}
