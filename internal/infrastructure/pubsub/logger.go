package pubsub

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// loggerAdapter routes watermill's internal logging into zerolog.
type loggerAdapter struct {
	log zerolog.Logger
}

func newLoggerAdapter(log zerolog.Logger) watermill.LoggerAdapter {
	return loggerAdapter{log: log.With().Str("component", "watermill").Logger()}
}

func (a loggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error().Err(err).Fields(map[string]interface{}(fields)).Msg(msg)
}

func (a loggerAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info().Fields(map[string]interface{}(fields)).Msg(msg)
}

func (a loggerAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug().Fields(map[string]interface{}(fields)).Msg(msg)
}

func (a loggerAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Trace().Fields(map[string]interface{}(fields)).Msg(msg)
}

func (a loggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return loggerAdapter{log: a.log.With().Fields(map[string]interface{}(fields)).Logger()}
}
