package llm

import "github.com/sirupsen/logrus"

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events as structured log entries.
type LogObserver struct {
	log logrus.FieldLogger
}

func NewLogObserver(log logrus.FieldLogger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	entry := o.log.WithFields(logrus.Fields{
		"task":       event.Task,
		"provider":   event.Provider,
		"model":      event.Model,
		"latency_ms": event.LatencyMs,
		"attempts":   event.Attempts,
	})
	if !event.Success {
		entry.WithField("error_code", event.ErrorCode).Warn("llm call failed")
		return
	}
	entry.Info("llm call")
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
