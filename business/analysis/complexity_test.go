package analysis_test

import (
	"math"
	"testing"

	"github.com/hsbadam/Syn10platform/business/analysis"
)

func TestComplexityEmptySession(t *testing.T) {
	t.Parallel()

	c := analysis.NewComplexityAnalyzer(analysis.DefaultConfig())
	r := c.Result()

	if r.Score != 0 || r.Confidence != 0 {
		t.Fatalf("empty session must yield zero result, got %+v", r)
	}
}

func TestComplexityDiversityClustering(t *testing.T) {
	t.Parallel()

	t.Run("identical centroids form one cluster", func(t *testing.T) {
		t.Parallel()
		c := analysis.NewComplexityAnalyzer(analysis.DefaultConfig())
		for i := 0; i < 10; i++ {
			c.Observe(200, 0, -20)
		}

		r := c.Result()
		if want := 1.0 / 10.0; math.Abs(r.Diversity-want) > 1e-9 {
			t.Fatalf("diversity: got %v, want %v", r.Diversity, want)
		}
	})

	t.Run("spread centroids form one cluster each", func(t *testing.T) {
		t.Parallel()
		c := analysis.NewComplexityAnalyzer(analysis.DefaultConfig())
		// 100, 300, 500, 700: each further than the 50-bin cluster width
		// from every other.
		for _, v := range []float64{100, 300, 500, 700} {
			c.Observe(v, 0, -20)
		}

		r := c.Result()
		if r.Diversity != 1 {
			t.Fatalf("diversity: got %v, want 1", r.Diversity)
		}
	})

	t.Run("near centroids join the first cluster", func(t *testing.T) {
		t.Parallel()
		c := analysis.NewComplexityAnalyzer(analysis.DefaultConfig())
		for _, v := range []float64{100, 120, 140, 90} {
			c.Observe(v, 0, -20)
		}

		r := c.Result()
		if want := 1.0 / 4.0; math.Abs(r.Diversity-want) > 1e-9 {
			t.Fatalf("diversity: got %v, want %v", r.Diversity, want)
		}
	})
}

func TestComplexityDynamicsClamped(t *testing.T) {
	t.Parallel()

	c := analysis.NewComplexityAnalyzer(analysis.DefaultConfig())
	for i := 0; i < 5; i++ {
		c.Observe(200, 500, -20) // mean flux 500 -> 5.0 before the clamp
	}

	if r := c.Result(); r.Dynamics != 1 {
		t.Fatalf("dynamics: got %v, want clamp at 1", r.Dynamics)
	}
}

func TestComplexityConfidence(t *testing.T) {
	t.Parallel()

	t.Run("snr fallback when one group is empty", func(t *testing.T) {
		t.Parallel()
		c := analysis.NewComplexityAnalyzer(analysis.DefaultConfig())
		// All frames above the speech cutoff: no noise group, assume 10dB.
		for i := 0; i < 100; i++ {
			c.Observe(200, 0, -20)
		}

		r := c.Result()
		want := 1.0*0.5 + (10.0/20.0)*0.5
		if math.Abs(r.Confidence-want) > 1e-9 {
			t.Fatalf("confidence: got %v, want %v", r.Confidence, want)
		}
	})

	t.Run("measured snr", func(t *testing.T) {
		t.Parallel()
		c := analysis.NewComplexityAnalyzer(analysis.DefaultConfig())
		// 50 speech frames at -15dB and 50 noise frames at -55dB: 40dB
		// SNR saturates the snr term.
		for i := 0; i < 50; i++ {
			c.Observe(200, 0, -15)
			c.Observe(200, 0, -55)
		}

		r := c.Result()
		if want := 1.0; math.Abs(r.Confidence-want) > 1e-9 {
			t.Fatalf("confidence: got %v, want %v", r.Confidence, want)
		}
	})

	t.Run("short session lowers confidence", func(t *testing.T) {
		t.Parallel()
		c := analysis.NewComplexityAnalyzer(analysis.DefaultConfig())
		for i := 0; i < 20; i++ {
			c.Observe(200, 0, -20)
		}

		r := c.Result()
		want := (20.0/100.0)*0.5 + (10.0/20.0)*0.5
		if math.Abs(r.Confidence-want) > 1e-9 {
			t.Fatalf("confidence: got %v, want %v", r.Confidence, want)
		}
	})
}

func TestComplexityScoreWeighting(t *testing.T) {
	t.Parallel()

	c := analysis.NewComplexityAnalyzer(analysis.DefaultConfig())
	// Two far-apart centroids, flux 50 each: diversity 1, dynamics 0.5.
	c.Observe(100, 50, -20)
	c.Observe(400, 50, -20)

	r := c.Result()
	if want := int(math.Round(100 * (0.6*1 + 0.4*0.5))); r.Score != want {
		t.Fatalf("score: got %d, want %d", r.Score, want)
	}
}
