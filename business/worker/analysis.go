package worker

import (
	"context"
	"time"

	"github.com/hsbadam/Syn10platform/business/analysis"
	"github.com/hsbadam/Syn10platform/foundation/state"
)

// analysisOperation owns the session lifecycle: it restores the user's
// profile, feeds ring frames through the pipeline, publishes voice
// activity flips and, when capture ends, analyzes and persists the
// session before shutting the worker down.
func (w *Worker) analysisOperation() {
	w.logger.Infow("worker: analysisOperation: G started")
	defer w.logger.Infow("worker: analysisOperation: G completed")

	ctx := context.Background()

	baseline, err := w.profile.LoadBaseline(ctx, w.config.UserID)
	if err != nil {
		w.Shutdown(err)
		return
	}
	entries, err := w.profile.LoadHistory(ctx, w.config.UserID)
	if err != nil {
		w.Shutdown(err)
		return
	}

	adapter := analysis.NewBaselineAdapter(w.config.Analysis, baseline)
	history := analysis.NewHistory(w.config.Analysis.HistoryCap)
	history.Restore(entries)

	if err := w.machine.Transition(state.Recording); err != nil {
		w.Shutdown(err)
		return
	}
	w.session.Start()
	w.logger.Infow("worker: analysisOperation: recording started", "session", w.config.SessionID, "user", w.config.UserID)

	speaking := false
	for {
		select {
		case <-w.frameCh:
			done, err := w.drainRing(&speaking)
			if err != nil {
				w.Shutdown(err)
				return
			}
			if done {
				w.logger.Infow("worker: analysisOperation: max session duration reached")
				w.finalize(ctx, adapter, history)
				return
			}

		case <-w.captureDoneCh:
			if _, err := w.drainRing(&speaking); err != nil {
				w.Shutdown(err)
				return
			}
			w.finalize(ctx, adapter, history)
			return

		case <-w.shut:
			w.logger.Infow("worker: analysisOperation: received shut signal")
			return
		}
	}
}

// drainRing feeds every queued frame through the session and reports
// whether the maximum session duration has been hit.
func (w *Worker) drainRing(speaking *bool) (bool, error) {
	for {
		frame, ok := w.ring.Dequeue()
		if !ok {
			return false, nil
		}

		_, nowSpeaking := w.session.ProcessFrame(frame)
		if nowSpeaking != *speaking {
			*speaking = nowSpeaking
			if err := w.broker.Publish(vadTopic, VoiceActivity{Speaking: nowSpeaking, Elapsed: frame.Elapsed}); err != nil {
				return false, err
			}
		}

		if w.config.MaxSessionDuration > 0 && frame.Elapsed >= w.config.MaxSessionDuration {
			return true, nil
		}
	}
}

func (w *Worker) finalize(ctx context.Context, adapter *analysis.BaselineAdapter, history *analysis.History) {
	if err := w.machine.Transition(state.Stopped); err != nil {
		w.Shutdown(err)
		return
	}
	w.session.Stop()
	w.logger.Infow("worker: analysisOperation: recording stopped", "frames", w.session.FrameCount())

	now := time.Now()
	metrics, err := w.session.Analyze(now)
	if err != nil {
		w.Shutdown(err)
		return
	}

	adjusted := adapter.Apply(metrics)
	adapter.Update(metrics)
	metrics = adjusted
	metrics.Explanations = analysis.GenerateInsights(w.config.Analysis, metrics, adapter.Baseline(), history.RecentAverages())

	history.Push(metrics, now)

	if err := w.profile.SaveBaseline(ctx, w.config.UserID, adapter.Baseline()); err != nil {
		w.Shutdown(err)
		return
	}
	if err := w.profile.SaveHistory(ctx, w.config.UserID, history.Entries()); err != nil {
		w.Shutdown(err)
		return
	}

	if err := w.machine.Transition(state.Analyzed); err != nil {
		w.Shutdown(err)
		return
	}

	result := SessionResult{
		SessionID: w.config.SessionID,
		Metrics:   metrics,
		Baseline:  adapter.Baseline(),
		Trends:    history.RecentTrends(),
		Degraded:  w.profile.Degraded(),
	}

	if err := w.broker.Publish(metricsTopic, result); err != nil {
		w.Shutdown(err)
		return
	}

	if w.results != nil {
		select {
		case w.results <- result:
		default:
		}
	}

	w.logger.Infow("worker: analysisOperation: session analyzed",
		"session", w.config.SessionID,
		"wellness", result.Metrics.WellnessScore,
		"load", result.Metrics.CognitiveLoad.Level,
	)

	w.Shutdown(nil)
}
