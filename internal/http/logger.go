package http

import (
	"fmt"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// retryLogger implements retryablehttp.LeveledLogger on top of ptero.Logger.
type retryLogger struct {
	logger ptero.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fieldsOf(keysAndValues))
}

// Info is dropped. Request logging is done by Client itself when debug is on.
func (l *retryLogger) Info(string, ...interface{}) {}

// Debug is dropped; retryablehttp logs every attempt at this level.
func (l *retryLogger) Debug(string, ...interface{}) {}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsOf(keysAndValues))
}

func fieldsOf(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	if len(keysAndValues)%2 == 1 {
		fields["extra"] = keysAndValues[len(keysAndValues)-1]
	}

	return fields
}
