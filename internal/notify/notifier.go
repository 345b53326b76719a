// Package notify carries user-facing notices out of the core services.
// The services emit results here instead of rendering anything themselves;
// what a consumer does with a notice (toast, CLI line, nothing) is its own
// business.
package notify

import "log/slog"

// Level classifies a notice for display purposes
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notifier receives user-facing notices emitted by the core services
type Notifier interface {
	Notify(level Level, message string)
}

// SlogNotifier forwards notices to a structured logger
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a Notifier backed by the given logger
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) Notify(level Level, message string) {
	if level == LevelError {
		n.logger.Error(message)
		return
	}
	n.logger.Info(message)
}

// Nop discards all notices
type Nop struct{}

func (Nop) Notify(level Level, message string) {}

// Ensure implementations satisfy the interface
var (
	_ Notifier = (*SlogNotifier)(nil)
	_ Notifier = Nop{}
)
