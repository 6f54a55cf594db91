// Package dsp converts raw analysis frames into scalar voice features.
package dsp

import (
	"math"
	"time"
)

// epsilon keeps the dB conversion away from log(0) on silent frames.
const epsilon = 1e-10

// RolloffFraction is the share of total spectral magnitude below the
// rolloff bin.
const RolloffFraction = 0.85

// Frame is one analysis tick worth of audio: time-domain samples plus the
// magnitude spectrum for the same window. Samples are unsigned 8-bit
// centered at 128, the format the capture collaborator delivers.
type Frame struct {
	Samples  []byte
	Spectrum []float64
	Elapsed  time.Duration
}

// Features holds the scalar features extracted from a single Frame.
type Features struct {
	EnergyDb         float64       `json:"energyDb"`
	ZeroCrossings    int           `json:"zeroCrossings"`
	SpectralEntropy  float64       `json:"spectralEntropy"`
	SpectralCentroid float64       `json:"spectralCentroid"`
	SpectralRolloff  float64       `json:"spectralRolloff"`
	SpectralFlux     float64       `json:"spectralFlux"`
	Elapsed          time.Duration `json:"elapsed"`
}

// Extractor computes Features frame by frame. It keeps exactly one frame
// of spectral history for the flux computation, so a single Extractor
// serves a single recording session and Reset must be called between
// sessions.
type Extractor struct {
	prevSpectrum []float64
}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Reset drops the spectral history so the next frame's flux starts from
// zero rather than leaking across sessions.
func (e *Extractor) Reset() {
	e.prevSpectrum = nil
}

// Extract computes all per-frame features for one Frame.
func (e *Extractor) Extract(f Frame) Features {
	normalized := normalizeSamples(f.Samples)

	feat := Features{
		EnergyDb:         EnergyDb(normalized),
		ZeroCrossings:    ZeroCrossings(normalized),
		SpectralEntropy:  SpectralEntropy(f.Spectrum),
		SpectralCentroid: SpectralCentroid(f.Spectrum),
		SpectralRolloff:  SpectralRolloff(f.Spectrum),
		SpectralFlux:     SpectralFlux(f.Spectrum, e.prevSpectrum),
		Elapsed:          f.Elapsed,
	}

	e.prevSpectrum = append(e.prevSpectrum[:0], f.Spectrum...)

	return feat
}

// normalizeSamples maps unsigned 8-bit samples centered at 128 into [-1,1].
func normalizeSamples(samples []byte) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = (float64(s) - 128.0) / 128.0
	}
	return out
}

// EnergyDb is the RMS of the normalized samples converted to decibels.
func EnergyDb(samples []float64) float64 {
	if len(samples) == 0 {
		return 20 * math.Log10(epsilon)
	}

	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	rms := math.Sqrt(sum / float64(len(samples)))

	return 20 * math.Log10(rms+epsilon)
}

// ZeroCrossings counts sign changes across the normalized sample buffer.
func ZeroCrossings(samples []float64) int {
	count := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i] >= 0) != (samples[i-1] >= 0) {
			count++
		}
	}
	return count
}

// SpectralEntropy is the Shannon entropy of the magnitude spectrum treated
// as a probability distribution, normalized by log2(bins) to land in
// [0,1]. A zero spectrum has entropy 0.
func SpectralEntropy(spectrum []float64) float64 {
	if len(spectrum) < 2 {
		return 0
	}

	var total float64
	for _, m := range spectrum {
		total += m
	}
	if total == 0 {
		return 0
	}

	var entropy float64
	for _, m := range spectrum {
		p := m / total
		if p > 0 {
			entropy -= p * math.Log2(p)
		}
	}

	return entropy / math.Log2(float64(len(spectrum)))
}

// SpectralCentroid is the magnitude-weighted average bin index, 0 when the
// spectrum carries no energy.
func SpectralCentroid(spectrum []float64) float64 {
	var weighted, total float64
	for i, m := range spectrum {
		weighted += float64(i) * m
		total += m
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// SpectralRolloff is the smallest bin index where the cumulative magnitude
// reaches RolloffFraction of the total. Defaults to the last bin when the
// threshold is never reached, which includes the all-zero spectrum.
func SpectralRolloff(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0
	}

	var total float64
	for _, m := range spectrum {
		total += m
	}
	threshold := total * RolloffFraction

	if total > 0 {
		var cumulative float64
		for i, m := range spectrum {
			cumulative += m
			if cumulative >= threshold {
				return float64(i)
			}
		}
	}

	return float64(len(spectrum) - 1)
}

// SpectralFlux is the L2 norm of the positive-only magnitude increase
// between consecutive frames. The first frame of a session has no
// predecessor and fluxes against silence.
func SpectralFlux(spectrum, prev []float64) float64 {
	var sum float64
	for i, m := range spectrum {
		var p float64
		if i < len(prev) {
			p = prev[i]
		}
		if d := m - p; d > 0 {
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}
