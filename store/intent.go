package store

import (
	"github.com/cyverse-de/notification-preferences/model"
)

// IntentKind identifies the kind of change a user asked for.
type IntentKind string

// The supported intent kinds.
const (
	SetGeneral    IntentKind = "set_general"
	SetPreference IntentKind = "set_preference"
	ResetDefaults IntentKind = "reset"
)

// The names of the toggles that intents can refer to.
const (
	FieldEnabled = "enabled"
	FieldSound   = "sound"
	FieldEmail   = "email"
	FieldPush    = "push"
)

// Intent describes a single change to the notification settings. A preference intent addresses the
// first entry of its type unless Row is set, in which case the entry at that position must have the
// same type.
type Intent struct {
	Kind  IntentKind             `json:"kind"`
	Field string                 `json:"field,omitempty"`
	Type  model.NotificationType `json:"type,omitempty"`
	Row   *int                   `json:"row,omitempty"`
	Value bool                   `json:"value"`
}

// Apply applies an intent to the in-memory settings. An UnrecoverableError is returned if the intent
// refers to a toggle that doesn't exist or can't currently be changed.
func (s *Store) Apply(intent Intent) error {
	switch intent.Kind {
	case SetGeneral:
		return s.setGeneral(intent.Field, intent.Value)
	case SetPreference:
		return s.setPreference(intent.Type, intent.Row, intent.Field, intent.Value)
	case ResetDefaults:
		s.Reset()
		return nil
	default:
		return NewUnrecoverableError("unsupported intent kind: %q", intent.Kind)
	}
}

func (s *Store) setGeneral(field string, value bool) error {
	switch field {
	case FieldEnabled:
		s.general.Enabled = value
	case FieldSound:
		s.general.Sound = value
	case FieldEmail:
		s.general.Email = value
	default:
		return NewUnrecoverableError("unknown general setting: %q", field)
	}
	return nil
}

func (s *Store) setPreference(notificationType model.NotificationType, row *int, field string, value bool) error {
	if !model.IsKnownType(notificationType) {
		return NewUnrecoverableError("unknown notification type: %q", notificationType)
	}

	i := s.indexOf(notificationType)
	if row != nil {
		if *row < 0 || *row >= len(s.preferences) || s.preferences[*row].Type != notificationType {
			return NewUnrecoverableError("row %d is not a %s preference", *row, notificationType)
		}
		i = *row
	}
	if i < 0 {
		return NewUnrecoverableError("no preference for notification type %q", notificationType)
	}

	switch field {
	case FieldEnabled:
		s.preferences[i].Enabled = value
	case FieldPush:
		s.preferences[i].Push = value
	case FieldEmail:
		// Per-type email toggles are locked while email is disabled globally.
		if !s.general.Email {
			return NewUnrecoverableError("email notifications are disabled; %s email delivery can't be changed", notificationType)
		}
		s.preferences[i].Email = value
	default:
		return NewUnrecoverableError("unknown preference setting: %q", field)
	}
	return nil
}

func (s *Store) indexOf(notificationType model.NotificationType) int {
	for i, preference := range s.preferences {
		if preference.Type == notificationType {
			return i
		}
	}
	return -1
}
