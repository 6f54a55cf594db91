// Package worker runs one recording session end to end: frames are
// pulled from the capture source, pushed through the analysis pipeline
// and the final metrics are persisted and published.
package worker

import (
	"sync"

	"go.uber.org/zap"

	"github.com/hsbadam/Syn10platform/business/analysis"
	"github.com/hsbadam/Syn10platform/business/profile"
	"github.com/hsbadam/Syn10platform/foundation/capture"
	"github.com/hsbadam/Syn10platform/foundation/pubsub"
	"github.com/hsbadam/Syn10platform/foundation/state"
)

const (
	vadTopic     = "voice-activity"
	metricsTopic = "session-metrics"
)

type Worker struct {
	config  Config
	machine *state.Machine
	logger  *zap.SugaredLogger

	source  capture.Source
	profile *profile.Store
	session *analysis.Session
	ring    *capture.FrameRing
	broker  *pubsub.Broker
	results chan<- SessionResult

	vadSub     *pubsub.Subscriber
	metricsSub *pubsub.Subscriber

	wg       sync.WaitGroup
	shut     chan struct{}
	shutOnce sync.Once
	error    chan error

	frameCh       chan struct{}
	captureDoneCh chan struct{}
}

// Run starts the worker goroutines and returns its error channel. The
// channel delivers at most one fatal error and is closed once every
// goroutine has completed, so a nil receive means a clean run.
func Run(s Settings) <-chan error {
	w := &Worker{
		config:        s.Config,
		machine:       state.NewMachine(),
		logger:        s.Logger,
		source:        s.Source,
		profile:       s.Profile,
		session:       analysis.NewSession(s.Config.Analysis),
		ring:          capture.NewFrameRing(s.Config.RingSize),
		broker:        pubsub.NewBroker(),
		results:       s.Results,
		shut:          make(chan struct{}),
		error:         make(chan error, 1),
		frameCh:       make(chan struct{}, 1),
		captureDoneCh: make(chan struct{}),
	}

	w.vadSub = pubsub.NewSubscriber(16)
	w.broker.Subscribe(vadTopic, w.vadSub)

	w.metricsSub = pubsub.NewSubscriber(1)
	w.broker.Subscribe(metricsTopic, w.metricsSub)

	operations := []func(){
		w.captureOperation,
		w.analysisOperation,
		w.liveOperation,
	}

	g := len(operations)
	w.wg.Add(g)

	hasStarted := make(chan bool)

	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	for i := 0; i < g; i++ {
		<-hasStarted
	}

	go func() {
		w.wg.Wait()
		close(w.error)
	}()

	return w.error
}

// Shutdown terminates the worker goroutines. Safe to call more than
// once; a non-nil err is forwarded to the error channel.
func (w *Worker) Shutdown(err error) {
	w.logger.Infow("worker: shutdown: started")
	defer w.logger.Infow("worker: shutdown: completed")

	if err != nil {
		w.logger.Errorw("worker: shutdown", "ERROR", err)
		select {
		case w.error <- err:
		default:
		}
	}

	w.shutOnce.Do(func() {
		w.logger.Infow("worker: shutdown: terminate goroutines")
		close(w.shut)
	})
}
