package classify

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tldrviz/pkg/httputil"
	"github.com/matzehuels/tldrviz/pkg/model"
	"github.com/matzehuels/tldrviz/pkg/observability"
)

// TimestampFormat is the ISO-8601 layout of ClassificationsData.AnalyzedAt.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Classifier runs one classification against a Model.
type Classifier struct {
	model  Model
	logger *log.Logger
	retry  httputil.Policy
	now    func() time.Time
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(c *Classifier) { c.logger = l }
}

// WithRetry sets how often a transient provider failure is retried and the
// initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Classifier) { c.retry.Attempts, c.retry.Delay = attempts, delay }
}

// WithClock replaces time.Now for the AnalyzedAt timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) { c.now = now }
}

// NewClassifier creates a Classifier for m.
func NewClassifier(m Model, opts ...Option) *Classifier {
	c := &Classifier{
		model:  m,
		logger: log.Default(),
		retry:  httputil.DefaultPolicy(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the underlying model.
func (c *Classifier) Model() Model { return c.model }

// Classify validates req, asks the model, and returns the validated
// result stamped with the current time. A request without entries returns
// an empty result without calling the model.
func (c *Classifier) Classify(ctx context.Context, req Request) (*model.ClassificationsData, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	result := &model.ClassificationsData{Classifications: []model.EntryPointClassification{}}
	if len(req.Entries) == 0 {
		result.AnalyzedAt = c.timestamp()
		return result, nil
	}

	hooks := observability.Classify()
	hooks.OnClassifyStart(ctx, c.model.Name(), len(req.Entries))
	start := time.Now()

	prompt := BuildPrompt(req.Contexts())
	c.logger.Debug("classifying entry points", "model", c.model.Name(), "entries", len(req.Entries), "prompt_bytes", len(prompt))

	retry := c.retry
	retry.OnRetry = func(attempt int, wait time.Duration, err error) {
		c.logger.Warn("model request failed, retrying", "model", c.model.Name(), "attempt", attempt, "wait", wait, "err", err)
	}
	var text string
	err := retry.Do(ctx, func() error {
		var err error
		text, err = c.model.Complete(ctx, prompt)
		return err
	})
	var parsed []model.EntryPointClassification
	if err == nil {
		parsed, err = ParseResponse(text)
	}
	hooks.OnClassifyComplete(ctx, c.model.Name(), len(parsed), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	result.Classifications = parsed
	result.AnalyzedAt = c.timestamp()
	c.logger.Info("classified entry points", "model", c.model.Name(), "classifications", len(parsed), "duration", time.Since(start).Round(time.Millisecond))
	return result, nil
}

func (c *Classifier) timestamp() string {
	return c.now().UTC().Format(TimestampFormat)
}
