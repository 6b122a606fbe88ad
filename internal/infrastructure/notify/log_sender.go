// Package notify holds verification code delivery. Mail and SMS transports
// are external collaborators; this package provides the log-backed sender
// used when no transport is wired.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes issued codes to the application log. The code itself is
// only emitted at debug level so production logs record the event without
// the secret.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, identifier, code string) error {
	s.log.Info().Str("identifier", identifier).Msg("verification code issued")
	s.log.Debug().Str("identifier", identifier).Str("code", code).Msg("verification code value")
	return nil
}
