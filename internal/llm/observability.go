package llm

import (
	"github.com/rs/zerolog"
)

// CallEvent records metadata about a single backend chat call.
type CallEvent struct {
	Model      string
	Endpoint   string
	LatencyMs  int64
	Success    bool
	StatusCode int
	ErrorCode  string
}

// Observer receives events about backend calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a zerolog logger.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates an Observer that logs events through logger.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ev := o.logger.Info()
	status := "ok"
	if !event.Success {
		ev = o.logger.Warn()
		status = "err:" + event.ErrorCode
	}
	ev = ev.Str("model", event.Model).
		Str("endpoint", event.Endpoint).
		Int64("latency_ms", event.LatencyMs).
		Str("status", status)
	if event.StatusCode != 0 {
		ev = ev.Int("http_status", event.StatusCode)
	}
	ev.Msg("llm_call")
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
