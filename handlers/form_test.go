package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/cyverse-de/notification-preferences/feedback"
	"github.com/cyverse-de/notification-preferences/model"
	"github.com/cyverse-de/notification-preferences/storage"
	"github.com/cyverse-de/notification-preferences/store"
	"github.com/cyverse-de/notification-preferences/view"
	"github.com/stretchr/testify/assert"
)

const formContentType = "application/x-www-form-urlencoded"

func TestShowSettings(t *testing.T) {
	assert := assert.New(t)
	harness := setupHandlers(t, storage.NewMemory())

	resp := harness.do(http.MethodGet, "/settings", "", "")
	assert.Equal(http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(body, "Notification Settings")
	assert.Contains(body, "Task Assignments")
	assert.Contains(body, `name="preferences.6.email" value="on" checked disabled>`)
}

func TestSubmitSettingsSaves(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	port := storage.NewMemory()
	harness := setupHandlers(t, port)

	// Everything on except sound and MESSAGE_RECEIVED.
	form := url.Values{}
	form.Set("action", "save")
	form.Set("enabled", "on")
	form.Set("email", "on")
	form.Set("email_interactive", "off")
	for i, preference := range model.Catalog() {
		if preference.Type != model.MessageReceived {
			form.Set(view.FieldName(i, "enabled"), "on")
		}
	}

	resp := harness.do(http.MethodPost, "/settings", formContentType, form.Encode())
	assert.Equal(http.StatusOK, resp.Code)
	assert.Contains(resp.Body.String(), feedback.Saved.Text)

	restored := store.New(port, store.DefaultKey)
	assert.NoError(restored.Load(ctx))
	assert.Equal(model.GeneralSettings{Enabled: true, Sound: false, Email: true}, restored.General())
	for _, preference := range restored.Preferences() {
		assert.Equal(preference.Type != model.MessageReceived, preference.Enabled)

		// The email toggles were disabled when the form was rendered, so they keep their values.
		assert.Equal(model.IsImportant(preference.Type), preference.Email)
		assert.True(preference.Push)
	}
}

func TestSubmitSettingsAppliesEmailTogglesWhenInteractive(t *testing.T) {
	assert := assert.New(t)
	harness := setupHandlers(t, storage.NewMemory())
	assert.NoError(harness.store.Apply(store.Intent{Kind: store.SetGeneral, Field: store.FieldEmail, Value: true}))

	// Turn general email off while also turning on email for task assignments.
	form := url.Values{}
	form.Set("email_interactive", "on")
	form.Set("enabled", "on")
	form.Set("sound", "on")
	form.Set(view.FieldName(0, "enabled"), "on")
	form.Set(view.FieldName(0, "email"), "on")

	resp := harness.do(http.MethodPost, "/settings", formContentType, form.Encode())
	assert.Equal(http.StatusOK, resp.Code)

	preferences := harness.store.Preferences()
	assert.True(preferences[0].Email)
	assert.False(preferences[3].Email, "unchecked email toggles should be turned off")
	assert.False(harness.store.General().Email)
}

func TestSubmitSettingsReset(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	port := storage.NewMemory()
	harness := setupHandlers(t, port)
	assert.NoError(harness.store.Apply(store.Intent{Kind: store.SetGeneral, Field: store.FieldSound, Value: false}))

	resp := harness.do(http.MethodPost, "/settings", formContentType, "action=reset")
	assert.Equal(http.StatusOK, resp.Code)
	assert.Contains(resp.Body.String(), "Save to keep them.")
	assert.Equal(model.DefaultSettings(), harness.store.Snapshot())

	_, found, err := port.Get(ctx, store.DefaultKey)
	assert.NoError(err)
	assert.False(found, "reset should not be persisted")
}

func TestSubmitSettingsUnsupportedAction(t *testing.T) {
	harness := setupHandlers(t, storage.NewMemory())

	resp := harness.do(http.MethodPost, "/settings", formContentType, "action=explode")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, model.DefaultSettings(), harness.store.Snapshot())
}

func TestSubmitSettingsSaveFailure(t *testing.T) {
	assert := assert.New(t)
	harness := setupHandlers(t, &brokenPort{Memory: storage.NewMemory()})

	resp := harness.do(http.MethodPost, "/settings", formContentType, "action=save&enabled=on")
	assert.Equal(http.StatusServiceUnavailable, resp.Code)
	assert.Contains(resp.Body.String(), feedback.SaveFailed.Text)
	assert.False(harness.store.General().Sound, "the submitted values stay in memory")
}

func TestSubmitSettingsUsesRenderTimeEmailState(t *testing.T) {
	assert := assert.New(t)
	harness := setupHandlers(t, storage.NewMemory())
	assert.NoError(harness.store.Apply(store.Intent{Kind: store.SetGeneral, Field: store.FieldEmail, Value: true}))

	// The form is rendered with interactive email toggles.
	resp := harness.do(http.MethodGet, "/settings", "", "")
	assert.Contains(resp.Body.String(), `name="email_interactive" value="on">`)

	// Email is turned off through the API before the form comes back.
	resp = harness.do(http.MethodPost, "/api/intents", "application/json",
		`{"kind":"set_general","field":"email","value":false}`)
	assert.Equal(http.StatusOK, resp.Code)

	// The submitted form keeps email on and turns on email for messages.
	form := url.Values{}
	form.Set("email_interactive", "on")
	form.Set("enabled", "on")
	form.Set("sound", "on")
	form.Set("email", "on")
	for i := range model.Catalog() {
		form.Set(view.FieldName(i, "enabled"), "on")
	}
	form.Set(view.FieldName(8, "email"), "on")

	resp = harness.do(http.MethodPost, "/settings", formContentType, form.Encode())
	assert.Equal(http.StatusOK, resp.Code)

	preferences := harness.store.Preferences()
	assert.True(harness.store.General().Email)
	assert.True(preferences[8].Email, "the submitted email toggle should not be dropped")
	assert.False(preferences[3].Email)
}

func TestSubmitSettingsDuplicateTypes(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	port := storage.NewMemory()
	assert.NoError(port.Set(ctx, store.DefaultKey,
		`{"preferences":[{"type":"MESSAGE_RECEIVED","title":"Messages","enabled":true},{"type":"MESSAGE_RECEIVED","title":"Direct Messages","enabled":true}]}`))

	harness := setupHandlers(t, port)
	harness.handlers.Load(ctx)

	// Only the first row stays enabled.
	form := url.Values{}
	form.Set("email_interactive", "off")
	form.Set("enabled", "on")
	form.Set(view.FieldName(0, "enabled"), "on")

	resp := harness.do(http.MethodPost, "/settings", formContentType, form.Encode())
	assert.Equal(http.StatusOK, resp.Code)

	preferences := harness.store.Preferences()
	assert.True(preferences[0].Enabled)
	assert.False(preferences[1].Enabled, "the second row should be addressed on its own")
}

func TestSubmitSettingsSkipsTypesOutsideCatalog(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	port := storage.NewMemory()
	assert.NoError(port.Set(ctx, store.DefaultKey,
		`{"preferences":[{"type":"LEGACY_ALERT","title":"Legacy","enabled":true},{"type":"MESSAGE_RECEIVED","title":"Messages","enabled":true}]}`))

	harness := setupHandlers(t, port)
	harness.handlers.Load(ctx)

	form := url.Values{}
	form.Set("email_interactive", "off")
	form.Set("enabled", "on")

	resp := harness.do(http.MethodPost, "/settings", formContentType, form.Encode())
	assert.Equal(http.StatusOK, resp.Code)

	preferences := harness.store.Preferences()
	assert.True(preferences[0].Enabled, "rows outside the catalog should be left alone")
	assert.False(preferences[1].Enabled)

	stored, found, err := port.Get(ctx, store.DefaultKey)
	assert.NoError(err)
	assert.True(found)
	assert.Contains(stored, "LEGACY_ALERT")
}
