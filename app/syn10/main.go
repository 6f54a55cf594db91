package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/google/uuid"

	"github.com/hsbadam/Syn10platform/business/analysis"
	"github.com/hsbadam/Syn10platform/business/profile"
	"github.com/hsbadam/Syn10platform/business/worker"
	"github.com/hsbadam/Syn10platform/foundation/capture"
	"github.com/hsbadam/Syn10platform/foundation/logger"
	"github.com/hsbadam/Syn10platform/foundation/storage"
)

var (
	version   string
	buildTime string
)

func main() {
	// =================================================================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Session struct {
			UserID        string        `conf:"default:default-user"`
			Tick          time.Duration `conf:"default:100ms"`
			MaxDuration   time.Duration `conf:"default:60s"`
			DeviceProfile string        `conf:"default:desktop,help:desktop or mobile"`
		}
		Capture struct {
			Script   time.Duration `conf:"default:30s,help:simulated speech length"`
			Realtime bool          `conf:"default:false"`
			Pause    time.Duration `conf:"default:2s,help:simulated mid-recording pause"`
		}
		Storage struct {
			Backend string `conf:"default:file,help:memory, file or redis"`
			DataDir string `conf:"default:./data"`
		}
		Redis struct {
			Address  string `conf:"default:localhost:6379"`
			Password string `conf:"default:,noprint"`
		}
		Logger struct {
			LogDirectory string `conf:"default:,noprint"`
		}
		Export bool `conf:"default:false,help:print the session history export and exit"`
	}{
		Version: conf.Version{
			Build: version,
			Desc:  buildTime,
		},
	}

	help, err := conf.Parse("SYN10", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "parsing config: %s\n", err)
		os.Exit(1)
	}

	// =================================================================================================================
	// Application Logger

	log, err := logger.New(cfg.Logger.LogDirectory, "syn10")
	if err != nil {
		fmt.Fprintf(os.Stderr, "constructing logger: %s\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	out, err := conf.String(&cfg)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}
	log.Infow("startup", "config", out)

	// =================================================================================================================
	// Storage

	var backend storage.Store
	switch cfg.Storage.Backend {
	case "memory":
		backend = storage.NewMemory()
	case "file":
		backend, err = storage.NewFile(cfg.Storage.DataDir)
	case "redis":
		backend, err = storage.NewRedis(cfg.Redis.Address, cfg.Redis.Password, log)
	default:
		err = fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}

	profileStore := profile.NewStore(log, backend)

	// =================================================================================================================
	// Export Mode

	if cfg.Export {
		if err := printExport(profileStore, cfg.Session.UserID); err != nil {
			log.Errorw("export", "ERROR", err)
			os.Exit(1)
		}
		return
	}

	// =================================================================================================================
	// Analysis Configuration

	analysisCfg := analysis.DefaultConfig()
	tick := cfg.Session.Tick
	if cfg.Session.DeviceProfile == "mobile" {
		tick = 200 * time.Millisecond
	}

	// =================================================================================================================
	// Capture Source

	source := capture.NewSimulated(demoScript(cfg.Capture.Script, cfg.Capture.Pause), tick)
	source.Realtime = cfg.Capture.Realtime

	// =================================================================================================================
	// Run Worker

	sessionID := uuid.NewString()
	results := make(chan worker.SessionResult, 1)

	workerCh := worker.Run(worker.Settings{
		Logger:  log,
		Source:  source,
		Profile: profileStore,
		Results: results,
		Config: worker.Config{
			UserID:             cfg.Session.UserID,
			SessionID:          sessionID,
			Tick:               tick,
			MaxSessionDuration: cfg.Session.MaxDuration,
			RingSize:           1 << 17,
			Analysis:           analysisCfg,
		},
	})

	// Blocking main and waiting for error or completion.
	err = <-workerCh

	log.Infow("shutdown", "status", "shutdown started")
	defer log.Infow("shutdown", "status", "shutdown complete")

	if err != nil {
		log.Errorw("shutdown", "ERROR", err)
		os.Exit(1)
	}

	select {
	case result := <-results:
		printResult(result)
	default:
		log.Infow("shutdown", "status", "no session result")
	}
}

// demoScript alternates speech bursts with one longer pause in the
// middle, enough material for every metric to move off its default.
func demoScript(length, pause time.Duration) []capture.Segment {
	burst := (length - pause) / 2
	return []capture.Segment{
		{Speech: true, Duration: burst},
		{Speech: false, Duration: pause},
		{Speech: true, Duration: burst},
	}
}

func printResult(result worker.SessionResult) {
	m := result.Metrics

	fmt.Printf("session %s\n", result.SessionID)
	fmt.Printf("  speech rate     %d wpm\n", m.SpeechRate)
	fmt.Printf("  pauses          %d per minute\n", m.PauseFrequency)
	fmt.Printf("  pitch variance  %.1f\n", m.PitchVariance)
	fmt.Printf("  voice energy    %d\n", m.VoiceEnergy)
	fmt.Printf("  fluency         %d\n", m.Fluency)
	fmt.Printf("  complexity      %d\n", m.Complexity)
	fmt.Printf("  cognitive load  %d (%s)\n", m.CognitiveLoad.Score, m.CognitiveLoad.Level)
	fmt.Printf("  wellness        %d\n", m.WellnessScore)

	for _, insight := range m.Explanations {
		fmt.Printf("  - %s\n", insight)
	}

	if result.Baseline.Established {
		fmt.Printf("baseline established over %d recordings\n", result.Baseline.RecordingsCount)
	} else {
		fmt.Printf("baseline building: %d recordings\n", result.Baseline.RecordingsCount)
	}

	fmt.Printf("trends: energy %s, wellness %s, speech rate %s\n",
		result.Trends.VoiceEnergy, result.Trends.Wellness, result.Trends.SpeechRate)

	if result.Degraded {
		fmt.Println("warning: storage backend unavailable, session kept in memory only")
	}
}

func printExport(store *profile.Store, userID string) error {
	entries, err := store.LoadHistory(context.Background(), userID)
	if err != nil {
		return err
	}

	history := analysis.NewHistory(analysis.DefaultConfig().HistoryCap)
	history.Restore(entries)

	doc, err := history.Export(time.Now())
	if err != nil {
		return err
	}

	fmt.Println(string(doc))
	return nil
}
