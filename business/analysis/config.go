package analysis

import "time"

// Config carries the pipeline's tunable policy values. The defaults are
// the product's shipped calibration; they are configuration, not derived
// quantities.
type Config struct {
	// Voice activity detection.
	EnergyThresholdDb float64
	ZeroCrossingRatio float64
	EntropyThreshold  float64
	HangoverFrames    int

	// Pause detection.
	MinPauseGap time.Duration

	// Complexity clustering.
	CentroidClusterWidth float64

	// Reference constants for fluency and cognitive load.
	IdealPauseRate float64
	IdealWPM       float64

	// Baseline adaptation.
	BaselineAlpha     float64
	MinRecordings     int
	EnergyDamping     float64
	SpeechRateDamping float64

	// History retention.
	HistoryCap int
}

// DefaultConfig returns the shipped calibration.
func DefaultConfig() Config {
	return Config{
		EnergyThresholdDb:    -35,
		ZeroCrossingRatio:    0.25,
		EntropyThreshold:     0.6,
		HangoverFrames:       10,
		MinPauseGap:          300 * time.Millisecond,
		CentroidClusterWidth: 50,
		IdealPauseRate:       4,
		IdealWPM:             150,
		BaselineAlpha:        0.1,
		MinRecordings:        7,
		EnergyDamping:        0.2,
		SpeechRateDamping:    0.1,
		HistoryCap:           30,
	}
}
