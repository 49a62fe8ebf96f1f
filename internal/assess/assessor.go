package assess

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/promptguard/internal/audit"
	"github.com/alexanderramin/promptguard/internal/guard"
	"github.com/rs/zerolog"
)

// Checker is the classification core the assessor drives.
type Checker interface {
	Check(ctx context.Context, payload any, cfg guard.Config) (guard.Result, error)
	CheckConversation(ctx context.Context, user, assistant string, cfg guard.Config) (guard.Result, error)
}

// ConversationRequest is a user message and the assistant reply to judge.
type ConversationRequest struct {
	User      string
	Assistant string
}

// Assessor runs requests through the guard core, logs each verdict and
// records it in the ledger when one is configured.
type Assessor struct {
	checker  Checker
	defaults guard.Config
	recorder audit.Recorder
	logger   zerolog.Logger
	source   string
	now      func() time.Time
}

// Option customizes an Assessor.
type Option func(*Assessor)

// WithRecorder records every verdict through r.
func WithRecorder(r audit.Recorder) Option {
	return func(a *Assessor) { a.recorder = r }
}

// WithLogger sets the logger used for verdict and recorder messages.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Assessor) { a.logger = l }
}

// WithSource tags recorded verdicts with the calling surface, e.g. "mcp".
func WithSource(source string) Option {
	return func(a *Assessor) { a.source = source }
}

// NewAssessor creates an Assessor. defaults supplies the model and
// endpoint for calls whose override leaves them empty.
func NewAssessor(checker Checker, defaults guard.Config, opts ...Option) *Assessor {
	a := &Assessor{
		checker:  checker,
		defaults: defaults,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assess classifies a proposed operation.
func (a *Assessor) Assess(ctx context.Context, req Request, override guard.Config) (*Report, error) {
	cfg := override.Merge(a.defaults)
	start := a.now()

	res, err := a.checker.Check(ctx, BuildPayload(req), cfg)
	if err != nil {
		a.logger.Error().Err(err).Str("kind", string(audit.KindOperation)).Msg("assessment_failed")
		return nil, fmt.Errorf("assessing operation: %w", err)
	}

	a.observe(ctx, audit.KindOperation, req.Operation, cfg, res, a.now().Sub(start))
	return NewReport(req, res), nil
}

// AssessConversation classifies an assistant reply to a user message.
func (a *Assessor) AssessConversation(ctx context.Context, req ConversationRequest, override guard.Config) (*Report, error) {
	cfg := override.Merge(a.defaults)
	start := a.now()

	res, err := a.checker.CheckConversation(ctx, req.User, req.Assistant, cfg)
	if err != nil {
		a.logger.Error().Err(err).Str("kind", string(audit.KindConversation)).Msg("assessment_failed")
		return nil, fmt.Errorf("assessing conversation: %w", err)
	}

	a.observe(ctx, audit.KindConversation, req.User, cfg, res, a.now().Sub(start))
	return NewReport(Request{Operation: req.User}, res), nil
}

func (a *Assessor) observe(ctx context.Context, kind audit.Kind, operation string, cfg guard.Config, res guard.Result, elapsed time.Duration) {
	ev := a.logger.Info()
	if res.Has(guard.ActionAllow) && len(res.Actions) == 1 {
		ev = a.logger.Debug()
	}
	ev.Str("kind", string(kind)).
		Str("risk", string(res.Risk)).
		Strs("reasons", res.Reasons).
		Interface("actions", res.Actions).
		Int64("elapsed_ms", elapsed.Milliseconds()).
		Msg("verdict")

	if a.recorder == nil {
		return
	}
	entry := &audit.Entry{
		Source:    a.source,
		Kind:      kind,
		Operation: operation,
		Model:     cfg.Model,
		Risk:      res.Risk,
		Reasons:   res.Reasons,
		Actions:   res.Actions,
		LatencyMs: elapsed.Milliseconds(),
	}
	if err := a.recorder.Record(ctx, entry); err != nil {
		a.logger.Warn().Err(err).Msg("audit_record_failed")
	}
}
