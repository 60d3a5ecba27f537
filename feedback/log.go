package feedback

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Log is a Notifier that writes feedback messages to a logger.
type Log struct {
	entry *logrus.Entry
}

// NewLog returns a Notifier that writes to the given log entry.
func NewLog(entry *logrus.Entry) *Log {
	return &Log{entry: entry.WithField("component", "feedback")}
}

// Notify logs the message at a level matching its severity.
func (l *Log) Notify(_ context.Context, msg Message) error {
	switch msg.Level {
	case LevelError:
		l.entry.Error(msg.Text)
	case LevelWarning:
		l.entry.Warn(msg.Text)
	default:
		l.entry.Info(msg.Text)
	}
	return nil
}
