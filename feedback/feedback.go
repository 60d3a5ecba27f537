// Package feedback delivers short, user-visible messages describing the outcome of an operation.
package feedback

import (
	"context"
)

// Level indicates whether a message reports a success or a problem.
type Level string

// The supported message levels.
const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is a single piece of user feedback.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Messages shown for the standard store operations.
var (
	Saved        = Message{Level: LevelInfo, Text: "Notification settings saved."}
	ResetPending = Message{Level: LevelInfo, Text: "Notification settings reset to defaults. Save to keep them."}
	SaveFailed   = Message{Level: LevelError, Text: "Notification settings could not be saved. Please try again."}
	LoadFailed   = Message{Level: LevelWarning, Text: "Stored notification settings could not be read. Defaults have been restored."}
)

// Notifier delivers feedback messages.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}
