package analysis

import "math"

// BaselineAdapter maintains a per-user exponentially smoothed baseline and
// contextualizes fresh session metrics against it. Apply must run with the
// pre-update baseline and Update must run with the unadjusted metrics;
// adjusting toward a target that shifts within the same session would be
// circular.
type BaselineAdapter struct {
	cfg      Config
	baseline UserBaseline
}

func NewBaselineAdapter(cfg Config, baseline UserBaseline) *BaselineAdapter {
	return &BaselineAdapter{cfg: cfg, baseline: baseline}
}

// Baseline returns the current baseline state for persistence.
func (a *BaselineAdapter) Baseline() UserBaseline {
	return a.baseline
}

// Apply dampens session noise by pulling energy and speech rate partway
// back toward the user's own historical norm. Until the baseline is
// established the metrics pass through unchanged.
func (a *BaselineAdapter) Apply(m SessionMetrics) SessionMetrics {
	if !a.baseline.Established {
		return m
	}

	if a.baseline.AvgEnergy != nil {
		deviation := float64(m.VoiceEnergy) - *a.baseline.AvgEnergy
		m.VoiceEnergy = int(math.Round(clamp(float64(m.VoiceEnergy)-deviation*a.cfg.EnergyDamping, 0, 100)))
	}
	if a.baseline.AvgSpeechRate != nil {
		deviation := float64(m.SpeechRate) - *a.baseline.AvgSpeechRate
		m.SpeechRate = int(math.Round(clamp(float64(m.SpeechRate)-deviation*a.cfg.SpeechRateDamping, 80, 200)))
	}

	return m
}

// Update folds the unadjusted session metrics into the rolling averages
// and flips Established once enough recordings have accumulated.
func (a *BaselineAdapter) Update(m SessionMetrics) {
	a.baseline.RecordingsCount++

	a.baseline.AvgEnergy = smooth(a.baseline.AvgEnergy, float64(m.VoiceEnergy), a.cfg.BaselineAlpha)
	a.baseline.AvgSpeechRate = smooth(a.baseline.AvgSpeechRate, float64(m.SpeechRate), a.cfg.BaselineAlpha)
	a.baseline.AvgPitchVariance = smooth(a.baseline.AvgPitchVariance, m.PitchVariance, a.cfg.BaselineAlpha)

	if a.baseline.RecordingsCount >= a.cfg.MinRecordings {
		a.baseline.Established = true
	}
}

// smooth seeds a nil average directly from the current value, otherwise
// applies exponential smoothing with the configured learning rate.
func smooth(avg *float64, current, alpha float64) *float64 {
	if avg == nil {
		return &current
	}
	next := (1-alpha)*(*avg) + alpha*current
	return &next
}
