package queue

import (
	"fmt"
	"log/slog"
	"os"
)

const (
	slogQueue = "queue"
)

// logAdapter lets asynq write to our slog logger.
type logAdapter struct {
	log *slog.Logger
}

func (l *logAdapter) Debug(args ...interface{}) { l.log.Debug(fmt.Sprint(args...)) }
func (l *logAdapter) Info(args ...interface{})  { l.log.Info(fmt.Sprint(args...)) }
func (l *logAdapter) Warn(args ...interface{})  { l.log.Warn(fmt.Sprint(args...)) }
func (l *logAdapter) Error(args ...interface{}) { l.log.Error(fmt.Sprint(args...)) }

// Fatal is expected to exit the process (as asynq's default logger does).
func (l *logAdapter) Fatal(args ...interface{}) {
	l.log.Error(fmt.Sprint(args...))
	os.Exit(1)
}
