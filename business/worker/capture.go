package worker

import (
	"context"
)

// captureOperation drains the frame source into the ring and nudges the
// analysis loop. When the source ends, the recording is over.
func (w *Worker) captureOperation() {
	w.logger.Infow("worker: captureOperation: G started")
	defer w.logger.Infow("worker: captureOperation: G completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := w.source.Stream(ctx)

	for {
		select {
		case frame, ok := <-stream:
			if !ok {
				w.logger.Infow("worker: captureOperation: source drained")
				close(w.captureDoneCh)
				return
			}

			if err := w.ring.Enqueue(frame); err != nil {
				w.Shutdown(err)
				return
			}

			select {
			case w.frameCh <- struct{}{}:
			default:
			}

		case <-w.shut:
			w.logger.Infow("worker: captureOperation: received shut signal")
			return
		}
	}
}
