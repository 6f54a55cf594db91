package dsp_test

import (
	"math"
	"testing"

	"github.com/hsbadam/Syn10platform/foundation/dsp"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestZeroSpectrum(t *testing.T) {
	t.Parallel()

	spectrum := make([]float64, 1024)

	if got := dsp.SpectralEntropy(spectrum); got != 0 {
		t.Fatalf("entropy of zero spectrum: got %v, want 0", got)
	}
	if got := dsp.SpectralCentroid(spectrum); got != 0 {
		t.Fatalf("centroid of zero spectrum: got %v, want 0", got)
	}
	if got := dsp.SpectralRolloff(spectrum); got != 1023 {
		t.Fatalf("rolloff of zero spectrum: got %v, want last bin 1023", got)
	}
}

func TestEnergyDb(t *testing.T) {
	t.Parallel()

	t.Run("digital silence", func(t *testing.T) {
		t.Parallel()
		samples := []float64{0, 0, 0, 0}
		// rms 0 with the epsilon guard lands at 20*log10(1e-10).
		if got := dsp.EnergyDb(samples); !almostEqual(got, -200, 1e-6) {
			t.Fatalf("got %v, want -200", got)
		}
	})

	t.Run("full scale", func(t *testing.T) {
		t.Parallel()
		samples := []float64{1, -1, 1, -1}
		if got := dsp.EnergyDb(samples); !almostEqual(got, 0, 1e-6) {
			t.Fatalf("got %v, want 0", got)
		}
	})

	t.Run("half scale", func(t *testing.T) {
		t.Parallel()
		samples := []float64{0.5, -0.5, 0.5, -0.5}
		want := 20 * math.Log10(0.5)
		if got := dsp.EnergyDb(samples); !almostEqual(got, want, 1e-6) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})
}

func TestZeroCrossings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		samples []float64
		want    int
	}{
		{"empty", nil, 0},
		{"constant positive", []float64{0.5, 0.5, 0.5}, 0},
		{"alternating", []float64{1, -1, 1, -1, 1}, 4},
		{"single crossing", []float64{0.2, 0.1, -0.1, -0.2}, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := dsp.ZeroCrossings(tt.samples); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSpectralEntropy(t *testing.T) {
	t.Parallel()

	t.Run("flat spectrum is maximally entropic", func(t *testing.T) {
		t.Parallel()
		spectrum := []float64{1, 1, 1, 1}
		if got := dsp.SpectralEntropy(spectrum); !almostEqual(got, 1, 1e-9) {
			t.Fatalf("got %v, want 1", got)
		}
	})

	t.Run("single peak is tonal", func(t *testing.T) {
		t.Parallel()
		spectrum := []float64{0, 10, 0, 0}
		if got := dsp.SpectralEntropy(spectrum); !almostEqual(got, 0, 1e-9) {
			t.Fatalf("got %v, want 0", got)
		}
	})
}

func TestSpectralCentroid(t *testing.T) {
	t.Parallel()

	spectrum := []float64{0, 1, 1, 0}
	if got := dsp.SpectralCentroid(spectrum); !almostEqual(got, 1.5, 1e-9) {
		t.Fatalf("got %v, want 1.5", got)
	}
}

func TestSpectralRolloff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spectrum []float64
		want     float64
	}{
		{"mass in first bin", []float64{10, 0, 0, 0}, 0},
		{"mass at the top", []float64{0, 0, 5, 5}, 3},
		{"flat", []float64{1, 1, 1, 1}, 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := dsp.SpectralRolloff(tt.spectrum); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpectralFlux(t *testing.T) {
	t.Parallel()

	t.Run("positive change only", func(t *testing.T) {
		t.Parallel()
		// Bin 0 rises by 2, bin 1 falls and must be ignored.
		if got := dsp.SpectralFlux([]float64{3, 1}, []float64{1, 2}); !almostEqual(got, 2, 1e-9) {
			t.Fatalf("got %v, want 2", got)
		}
	})

	t.Run("first frame fluxes against silence", func(t *testing.T) {
		t.Parallel()
		if got := dsp.SpectralFlux([]float64{3, 4}, nil); !almostEqual(got, 5, 1e-9) {
			t.Fatalf("got %v, want 5", got)
		}
	})
}

func TestExtractor(t *testing.T) {
	t.Parallel()

	t.Run("keeps one frame of spectral history", func(t *testing.T) {
		t.Parallel()
		e := dsp.NewExtractor()

		first := e.Extract(dsp.Frame{Samples: []byte{128, 128}, Spectrum: []float64{3, 4}})
		if !almostEqual(first.SpectralFlux, 5, 1e-9) {
			t.Fatalf("first frame flux: got %v, want 5", first.SpectralFlux)
		}

		second := e.Extract(dsp.Frame{Samples: []byte{128, 128}, Spectrum: []float64{3, 4}})
		if !almostEqual(second.SpectralFlux, 0, 1e-9) {
			t.Fatalf("unchanged spectrum flux: got %v, want 0", second.SpectralFlux)
		}
	})

	t.Run("reset drops the history", func(t *testing.T) {
		t.Parallel()
		e := dsp.NewExtractor()

		e.Extract(dsp.Frame{Samples: []byte{128}, Spectrum: []float64{3, 4}})
		e.Reset()

		feat := e.Extract(dsp.Frame{Samples: []byte{128}, Spectrum: []float64{3, 4}})
		if !almostEqual(feat.SpectralFlux, 5, 1e-9) {
			t.Fatalf("flux after reset: got %v, want 5", feat.SpectralFlux)
		}
	})
}
