// Package store holds the in-memory notification settings and reconciles them with persistent storage.
package store

import (
	"context"
	"encoding/json"

	"github.com/cyverse-de/notification-preferences/model"
	"github.com/cyverse-de/notification-preferences/storage"
	"github.com/sirupsen/logrus"
)

// DefaultKey is the storage key that notification settings are persisted under.
const DefaultKey = "notificationSettings"

var log = logrus.WithFields(logrus.Fields{
	"service": "notification-preferences",
	"package": "store",
})

// Store is the single source of truth for a user's notification settings. A Store is not safe for
// concurrent use.
type Store struct {
	port        storage.Port
	key         string
	general     model.GeneralSettings
	preferences []model.NotificationPreference
}

// New returns a store initialized with the default settings. Nothing is read from storage until Load
// is called.
func New(port storage.Port, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{port: port, key: key}
	s.restoreDefaults()
	return s
}

// restoreDefaults replaces the in-memory settings with the default settings.
func (s *Store) restoreDefaults() {
	s.general = model.DefaultGeneralSettings()
	s.preferences = model.Catalog()
}

// Key returns the storage key used by the store.
func (s *Store) Key() string {
	return s.key
}

// General returns the current general settings.
func (s *Store) General() model.GeneralSettings {
	return s.general
}

// Preferences returns a copy of the current per-type preferences in catalog order.
func (s *Store) Preferences() []model.NotificationPreference {
	result := make([]model.NotificationPreference, len(s.preferences))
	copy(result, s.preferences)
	return result
}

// Snapshot returns a copy of the current settings in the form in which they're persisted.
func (s *Store) Snapshot() model.PersistedSettings {
	return model.PersistedSettings{
		General:     s.general,
		Preferences: s.Preferences(),
	}
}

// storedGeneral is used to decode the general settings so that absent keys can be told apart from
// keys explicitly set to false.
type storedGeneral struct {
	Enabled *bool `json:"enabled"`
	Sound   *bool `json:"sound"`
	Email   *bool `json:"email"`
}

type storedSettings struct {
	General     *storedGeneral                 `json:"general"`
	Preferences []model.NotificationPreference `json:"preferences"`
}

// mergeGeneral applies the keys present in stored onto the given general settings.
func mergeGeneral(general model.GeneralSettings, stored *storedGeneral) model.GeneralSettings {
	if stored == nil {
		return general
	}
	if stored.Enabled != nil {
		general.Enabled = *stored.Enabled
	}
	if stored.Sound != nil {
		general.Sound = *stored.Sound
	}
	if stored.Email != nil {
		general.Email = *stored.Email
	}
	return general
}

// Load reads the persisted settings. If nothing has been persisted the defaults stand. Stored general
// settings are merged onto the defaults key by key, and stored preferences replace the default catalog
// wholesale. If the stored settings can't be read or decoded then the defaults are restored and a
// RecoverableError is returned.
func (s *Store) Load(ctx context.Context) error {
	s.restoreDefaults()

	// Read the stored settings.
	blob, found, err := s.port.Get(ctx, s.key)
	if err != nil {
		log.Warnf("unable to read %s, using defaults: %s", s.key, err.Error())
		return WrapRecoverableError(err, "unable to read stored notification settings")
	}
	if !found {
		log.Debugf("no stored value for %s, using defaults", s.key)
		return nil
	}

	// Decode the stored settings.
	var stored storedSettings
	if err = json.Unmarshal([]byte(blob), &stored); err != nil {
		log.Warnf("malformed value stored under %s, using defaults: %s", s.key, err.Error())
		return WrapRecoverableError(err, "stored notification settings are malformed")
	}

	// Apply the stored settings.
	s.general = mergeGeneral(s.general, stored.General)
	if stored.Preferences != nil {
		s.preferences = stored.Preferences
	}

	return nil
}

// Save persists the current settings, overwriting anything stored previously. The in-memory settings
// are unchanged if storage fails.
func (s *Store) Save(ctx context.Context) error {
	blob, err := json.Marshal(s.Snapshot())
	if err != nil {
		return WrapRecoverableError(err, "unable to serialize notification settings")
	}

	if err = s.port.Set(ctx, s.key, string(blob)); err != nil {
		log.Errorf("unable to write %s: %s", s.key, err.Error())
		return WrapRecoverableError(err, "unable to save notification settings")
	}

	return nil
}

// Reset restores the default general settings and re-enables in-app and push delivery for every
// notification type. Email delivery is enabled only for the important types. Nothing is persisted
// until Save is called.
func (s *Store) Reset() {
	s.general = model.DefaultGeneralSettings()
	for i := range s.preferences {
		s.preferences[i].Enabled = true
		s.preferences[i].Push = true
		s.preferences[i].Email = model.IsImportant(s.preferences[i].Type)
	}
}
