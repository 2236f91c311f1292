package fray

import "github.com/go-logr/logr"

var internalLogger = logr.Logger{}

// SetLogger installs the logger used by the engine. The default is a no-op
// logger so library users who don't care about engine internals get silence.
func SetLogger(logger logr.Logger) {
	internalLogger = logger.WithName("fray")
}

var attackEventLogger = func() logr.Logger {
	return internalLogger.WithName("attack_event")
}
