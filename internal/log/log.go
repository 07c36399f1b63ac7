// Package log holds the process-wide zap logger.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

// nop until Init so packages and tests can log without setup
var log = zap.NewNop().Sugar()

// Init builds a development logger when debug is set, a production one
// otherwise.
func Init(debug bool) error {
	var (
		zapLogger *zap.Logger
		err       error
	)
	if debug {
		zapLogger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		zapLogger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}
	log = zapLogger.Sugar()
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = log.Sync()
}

func Info(args ...interface{}) {
	log.Info(args...)
}

func Infof(template string, args ...interface{}) {
	log.Infof(template, args...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	log.Infow(msg, keysAndValues...)
}

func Debugf(template string, args ...interface{}) {
	log.Debugf(template, args...)
}

func Warnf(template string, args ...interface{}) {
	log.Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	log.Errorf(template, args...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	log.Errorw(msg, keysAndValues...)
}
