// Package capture provides audio frame sources that feed the analysis
// pipeline. A Source emits frames at a fixed tick interval, each
// carrying 8-bit time-domain samples and a precomputed magnitude
// spectrum, matching what a platform analyser node delivers.
package capture

import (
	"context"

	"github.com/hsbadam/Syn10platform/foundation/dsp"
)

// Source streams analysis frames until the context is cancelled or the
// source runs out of material. The returned channel is closed when the
// stream ends.
type Source interface {
	Stream(ctx context.Context) <-chan dsp.Frame
}
