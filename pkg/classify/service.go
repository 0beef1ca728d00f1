package classify

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tldrviz/pkg/model"
	"github.com/matzehuels/tldrviz/pkg/observability"
	"github.com/matzehuels/tldrviz/pkg/session"
)

// DefaultTimeout bounds one classification run.
const DefaultTimeout = 2 * time.Minute

// Saver persists classification results.
type Saver interface {
	Name() string
	Save(ctx context.Context, data *model.ClassificationsData) error
}

// Service runs classifications for a session.
type Service struct {
	state      *session.State
	classifier *Classifier
	saver      Saver
	timeout    time.Duration
	logger     *log.Logger

	wg sync.WaitGroup
}

// ServiceConfig configures a Service. Saver may be nil to skip persistence.
type ServiceConfig struct {
	State      *session.State
	Classifier *Classifier
	Saver      Saver
	Timeout    time.Duration
	Logger     *log.Logger
}

// NewService creates a Service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Service{
		state:      cfg.State,
		classifier: cfg.Classifier,
		saver:      cfg.Saver,
		timeout:    cfg.Timeout,
		logger:     cfg.Logger,
	}
}

// Analyze classifies the entry points of the session's current datasets.
//
// It fails with INVALID_INPUT when the arch or calls dataset is missing and
// with CONFLICT while another run is in flight. The model call is detached
// from ctx's cancellation and bounded by the configured timeout. On success
// the result replaces the session's classifications and is saved in the
// background; on failure the session keeps its previous result and records
// the error message.
func (s *Service) Analyze(ctx context.Context) (result *model.ClassificationsData, err error) {
	data := s.state.Datasets()
	req, err := NewRequest(data.Arch, data.Calls)
	if err != nil {
		return nil, err
	}
	if err := s.state.BeginAnalysis(); err != nil {
		return nil, err
	}
	defer func() { s.state.EndAnalysis(err) }()

	runID := uuid.NewString()
	logger := s.logger.With("run", runID)
	logger.Info("classification started", "entries", len(req.Entries), "model", s.classifier.Model().Name())

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	result, err = s.classifier.Classify(runCtx, req)
	if err != nil {
		logger.Error("classification failed", "err", err)
		return nil, err
	}

	s.state.SetClassifications(result)
	s.persist(ctx, logger, result)
	return result, nil
}

// persist saves data in a goroutine. Failures are logged only.
func (s *Service) persist(ctx context.Context, logger *log.Logger, data *model.ClassificationsData) {
	if s.saver == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()

		err := s.saver.Save(saveCtx, data)
		observability.Classify().OnPersist(saveCtx, s.saver.Name(), err)
		if err != nil {
			logger.Warn("failed to save classifications", "store", s.saver.Name(), "err", err)
			return
		}
		logger.Debug("saved classifications", "store", s.saver.Name())
	}()
}

// Wait blocks until all background saves have finished.
func (s *Service) Wait() { s.wg.Wait() }
