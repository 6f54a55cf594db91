package analysis

import "math"

// ComplexityResult summarizes spectral diversity and dynamics for one
// recording, as a proxy for phonetic variety.
type ComplexityResult struct {
	Score      int     `json:"score"`
	Diversity  float64 `json:"diversity"`
	Dynamics   float64 `json:"dynamics"`
	Confidence float64 `json:"confidence"`
}

// ComplexityAnalyzer accumulates per-frame spectral observations across a
// recording session.
type ComplexityAnalyzer struct {
	cfg Config

	centroids []float64
	fluxSum   float64
	energies  []float64
	frames    int
}

func NewComplexityAnalyzer(cfg Config) *ComplexityAnalyzer {
	return &ComplexityAnalyzer{cfg: cfg}
}

// Reset clears the accumulated session history.
func (c *ComplexityAnalyzer) Reset() {
	c.centroids = nil
	c.fluxSum = 0
	c.energies = nil
	c.frames = 0
}

// Observe records one frame's centroid, flux and energy.
func (c *ComplexityAnalyzer) Observe(centroid, flux, energyDb float64) {
	c.centroids = append(c.centroids, centroid)
	c.fluxSum += flux
	c.energies = append(c.energies, energyDb)
	c.frames++
}

// Result computes the session-level complexity estimate.
func (c *ComplexityAnalyzer) Result() ComplexityResult {
	if c.frames == 0 {
		return ComplexityResult{}
	}

	diversity := float64(c.clusterCount()) / float64(c.frames)

	dynamics := (c.fluxSum / float64(c.frames)) / 100
	if dynamics > 1 {
		dynamics = 1
	}

	score := int(math.Round(100 * (0.6*diversity + 0.4*dynamics)))

	return ComplexityResult{
		Score:      score,
		Diversity:  diversity,
		Dynamics:   dynamics,
		Confidence: c.confidence(),
	}
}

// clusterCount greedily groups centroid values: a value joins the first
// cluster whose representative lies within the configured width, otherwise
// it starts a new one.
func (c *ComplexityAnalyzer) clusterCount() int {
	var reps []float64
	for _, v := range c.centroids {
		joined := false
		for _, r := range reps {
			if math.Abs(v-r) <= c.cfg.CentroidClusterWidth {
				joined = true
				break
			}
		}
		if !joined {
			reps = append(reps, v)
		}
	}
	return len(reps)
}

// confidence blends sample-count sufficiency with an estimated SNR: the
// mean energy of frames above the speech-energy cutoff minus the mean of
// those below it. When either group is empty 10 dB is assumed.
func (c *ComplexityAnalyzer) confidence() float64 {
	samples := float64(c.frames) / 100
	if samples > 1 {
		samples = 1
	}

	var speechSum, noiseSum float64
	var speechN, noiseN int
	for _, e := range c.energies {
		if e > c.cfg.EnergyThresholdDb {
			speechSum += e
			speechN++
		} else {
			noiseSum += e
			noiseN++
		}
	}

	snr := 10.0
	if speechN > 0 && noiseN > 0 {
		snr = speechSum/float64(speechN) - noiseSum/float64(noiseN)
	}

	snrTerm := snr / 20
	if snrTerm > 1 {
		snrTerm = 1
	}
	if snrTerm < 0 {
		snrTerm = 0
	}

	return samples*0.5 + snrTerm*0.5
}
