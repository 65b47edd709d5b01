package types

// NominalVideoDuration returns the expected duration of one video frame in seconds,
// or 0 if the frame rate is unknown.
func NominalVideoDuration(frameRate Rational) float64 {
	if frameRate.IsZero() || frameRate.Float64() <= 0 {
		return 0
	}
	return frameRate.Reverse().Float64()
}

// NominalAudioDuration returns the expected duration of one audio unit holding
// samplesPerUnit samples in seconds, or 0 if it cannot be determined.
func NominalAudioDuration(samplesPerUnit int, sampleRate int) float64 {
	if samplesPerUnit <= 0 || sampleRate <= 0 {
		return 0
	}
	return float64(samplesPerUnit) / float64(sampleRate)
}
