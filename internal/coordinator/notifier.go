package coordinator

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Notifier is the injected success/failure side channel. The process-wide
// toast presenter satisfies it in the UI; tests substitute a recorder so the
// coordinator is testable without side effects.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Warning(msg string)
	Info(msg string)
}

// LogNotifier reports outcomes through zerolog, for headless use.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger(),
	}
}

func (n *LogNotifier) Success(msg string) { n.logger.Info().Str("kind", "success").Msg(msg) }
func (n *LogNotifier) Error(msg string)   { n.logger.Error().Msg(msg) }
func (n *LogNotifier) Warning(msg string) { n.logger.Warn().Msg(msg) }
func (n *LogNotifier) Info(msg string)    { n.logger.Info().Msg(msg) }
