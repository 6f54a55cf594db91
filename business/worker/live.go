package worker

import "time"

// liveOperation mirrors the published events to the log, which is what
// a UI layer would subscribe to for live speech indicators.
func (w *Worker) liveOperation() {
	w.logger.Infow("worker: liveOperation: G started")
	defer w.logger.Infow("worker: liveOperation: G completed")

	var speechStart time.Duration

	for {
		select {
		case event := <-w.vadSub.GetChannel():
			activity, ok := event.(VoiceActivity)
			if !ok {
				continue
			}

			if activity.Speaking {
				speechStart = activity.Elapsed
				w.logger.Infow("worker: liveOperation: speech started", "elapsed", activity.Elapsed)
			} else {
				w.logger.Infow("worker: liveOperation: speech ended", "elapsed", activity.Elapsed, "duration", activity.Elapsed-speechStart)
			}

		case event := <-w.metricsSub.GetChannel():
			result, ok := event.(SessionResult)
			if !ok {
				continue
			}

			w.logger.Infow("worker: liveOperation: session result",
				"session", result.SessionID,
				"wellness", result.Metrics.WellnessScore,
				"speechRate", result.Metrics.SpeechRate,
				"insights", len(result.Metrics.Explanations),
			)

		case <-w.shut:
			w.logger.Infow("worker: liveOperation: received shut signal")
			return
		}
	}
}
