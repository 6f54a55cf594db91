package analysis

import (
	"fmt"
	"math"
)

// maxInsights bounds the explanation list handed to the caller.
const maxInsights = 4

// GenerateInsights maps the adjusted metrics, the baseline and the recent
// history averages to short human-readable explanations. It is a pure
// function of its inputs: same metrics, same strings.
func GenerateInsights(cfg Config, m SessionMetrics, baseline UserBaseline, recent HistoryAverages) []string {
	var out []string

	switch {
	case m.VoiceEnergy > 80:
		out = append(out, "Your voice carried strong, consistent energy this session.")
	case m.VoiceEnergy < 50:
		out = append(out, "Voice energy was on the low side. A short walk or a glass of water before speaking can help.")
	}

	switch {
	case m.Complexity > 70:
		out = append(out, "Rich phonetic variety detected. Your speech covered a wide expressive range.")
	case m.Complexity < 40:
		out = append(out, "Speech variety was limited. Reading aloud regularly tends to broaden vocal range.")
	}

	switch {
	case m.CognitiveLoad.Score > 60:
		out = append(out, "Speech patterns suggest elevated cognitive load. Consider recording again when rested.")
	case m.CognitiveLoad.Score < 30:
		out = append(out, "Low cognitive load indicators. Your delivery sounded relaxed and deliberate.")
	}

	if baseline.Established {
		out = append(out, baselineInsights(m, baseline)...)
	} else {
		remaining := maxInt(0, cfg.MinRecordings-baseline.RecordingsCount)
		out = append(out, fmt.Sprintf("%d more recordings to establish your personal baseline.", remaining))
	}

	if recent.Count > 0 && len(out) < maxInsights {
		if delta := float64(m.WellnessScore) - recent.Wellness; math.Abs(delta) >= 5 {
			if delta > 0 {
				out = append(out, "This session scored above your recent average. The trend is moving up.")
			} else {
				out = append(out, "This session scored below your recent average. One session is noise, not a verdict.")
			}
		}
	}

	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out
}

func baselineInsights(m SessionMetrics, baseline UserBaseline) []string {
	var out []string

	if baseline.AvgSpeechRate != nil && *baseline.AvgSpeechRate > 0 {
		delta := (float64(m.SpeechRate) - *baseline.AvgSpeechRate) / *baseline.AvgSpeechRate
		switch {
		case delta > 0.1:
			out = append(out, "You spoke noticeably faster than your usual pace.")
		case delta < -0.1:
			out = append(out, "You spoke more slowly than your usual pace.")
		}
	}

	if baseline.AvgEnergy != nil && *baseline.AvgEnergy > 0 {
		delta := (float64(m.VoiceEnergy) - *baseline.AvgEnergy) / *baseline.AvgEnergy
		if delta > 0.1 {
			out = append(out, "Voice energy came in above your personal norm.")
		}
	}

	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
