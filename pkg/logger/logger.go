package logger

import (
	"go.uber.org/zap"
)

var log = zap.NewNop().Sugar()

// Init replaces the no-op default. Safe to skip in tests.
func Init(environment string) {
	var (
		l   *zap.Logger
		err error
	)

	if environment == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

	log = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func Debug(msg string, keysAndValues ...interface{}) {
	log.Debugw(msg, normalize(keysAndValues)...)
}

func Info(msg string, keysAndValues ...interface{}) {
	log.Infow(msg, normalize(keysAndValues)...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	log.Warnw(msg, normalize(keysAndValues)...)
}

func Error(msg string, keysAndValues ...interface{}) {
	log.Errorw(msg, normalize(keysAndValues)...)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	log.Fatalw(msg, normalize(keysAndValues)...)
}

// normalize tolerates a trailing bare value (usually an error) without a key.
func normalize(keysAndValues []interface{}) []interface{} {
	if len(keysAndValues)%2 == 0 {
		return keysAndValues
	}

	last := keysAndValues[len(keysAndValues)-1]
	return append(keysAndValues[:len(keysAndValues)-1], "error", last)
}
