package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/cyverse-de/notification-preferences/feedback"
	"github.com/cyverse-de/notification-preferences/metrics"
	"github.com/cyverse-de/notification-preferences/model"
	"github.com/cyverse-de/notification-preferences/storage"
	"github.com/cyverse-de/notification-preferences/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGetSettings(t *testing.T) {
	assert := assert.New(t)
	harness := setupHandlers(t, storage.NewMemory())

	resp := harness.do(http.MethodGet, "/api/settings", "", "")
	assert.Equal(http.StatusOK, resp.Code)

	m := decodeModel(t, resp)
	assert.Len(m.General, 3)
	assert.Len(m.Rows, 9)
	assert.Nil(m.Flash)
	for _, row := range m.Rows {
		assert.True(row.Email.Disabled)
	}
}

func TestApplyIntent(t *testing.T) {
	assert := assert.New(t)
	harness := setupHandlers(t, storage.NewMemory())

	resp := harness.do(http.MethodPost, "/api/intents", "application/json",
		`{"kind":"set_general","field":"email","value":true}`)
	assert.Equal(http.StatusOK, resp.Code)
	for _, row := range decodeModel(t, resp).Rows {
		assert.False(row.Email.Disabled)
	}

	resp = harness.do(http.MethodPost, "/api/intents", "application/json",
		`{"kind":"set_preference","type":"MESSAGE_RECEIVED","field":"email","value":true}`)
	assert.Equal(http.StatusOK, resp.Code)
	assert.True(harness.store.Preferences()[8].Email)
	assert.Equal(float64(2), testutil.ToFloat64(harness.metrics.Count(metrics.OperationIntent, metrics.OutcomeSuccess)))
}

func TestApplyIntentRejected(t *testing.T) {
	assert := assert.New(t)
	harness := setupHandlers(t, storage.NewMemory())

	resp := harness.do(http.MethodPost, "/api/intents", "application/json",
		`{"kind":"set_preference","type":"MESSAGE_RECEIVED","field":"email","value":true}`)
	assert.Equal(http.StatusBadRequest, resp.Code)
	assert.Contains(resp.Body.String(), "email notifications are disabled")
	assert.False(harness.store.Preferences()[8].Email)
	assert.Equal(float64(1), testutil.ToFloat64(harness.metrics.Count(metrics.OperationIntent, metrics.OutcomeRejected)))
}

func TestApplyIntentMalformedJSON(t *testing.T) {
	harness := setupHandlers(t, storage.NewMemory())

	resp := harness.do(http.MethodPost, "/api/intents", "application/json", "{bad json")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, model.DefaultSettings(), harness.store.Snapshot())
}

func TestApplyResetIntent(t *testing.T) {
	assert := assert.New(t)
	harness := setupHandlers(t, storage.NewMemory())
	assert.NoError(harness.store.Apply(store.Intent{Kind: store.SetGeneral, Field: store.FieldSound, Value: false}))

	resp := harness.do(http.MethodPost, "/api/intents", "application/json", `{"kind":"reset"}`)
	assert.Equal(http.StatusOK, resp.Code)

	m := decodeModel(t, resp)
	if assert.NotNil(m.Flash) {
		assert.Equal(feedback.ResetPending, *m.Flash)
	}
	assert.True(harness.store.General().Sound)
}

func TestSaveSettings(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	port := storage.NewMemory()
	harness := setupHandlers(t, port)
	assert.NoError(harness.store.Apply(store.Intent{Kind: store.SetGeneral, Field: store.FieldSound, Value: false}))

	resp := harness.do(http.MethodPost, "/api/settings/save", "", "")
	assert.Equal(http.StatusOK, resp.Code)
	m := decodeModel(t, resp)
	if assert.NotNil(m.Flash) {
		assert.Equal(feedback.Saved, *m.Flash)
	}
	assert.Equal([]feedback.Message{feedback.Saved}, harness.notifier.Messages)

	restored := store.New(port, store.DefaultKey)
	assert.NoError(restored.Load(ctx))
	assert.False(restored.General().Sound)
}

func TestSaveSettingsFailure(t *testing.T) {
	assert := assert.New(t)
	harness := setupHandlers(t, &brokenPort{Memory: storage.NewMemory()})

	resp := harness.do(http.MethodPost, "/api/settings/save", "", "")
	assert.Equal(http.StatusServiceUnavailable, resp.Code)
	m := decodeModel(t, resp)
	if assert.NotNil(m.Flash) {
		assert.Equal(feedback.SaveFailed, *m.Flash)
	}
	assert.Equal([]feedback.Message{feedback.SaveFailed}, harness.notifier.Messages)
	assert.Equal(float64(1), testutil.ToFloat64(harness.metrics.Count(metrics.OperationSave, metrics.OutcomeFailure)))
}

func TestResetSettings(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	port := storage.NewMemory()
	harness := setupHandlers(t, port)
	assert.NoError(harness.store.Apply(store.Intent{Kind: store.SetGeneral, Field: store.FieldEnabled, Value: false}))

	resp := harness.do(http.MethodPost, "/api/settings/reset", "", "")
	assert.Equal(http.StatusOK, resp.Code)
	assert.Equal(model.DefaultSettings(), harness.store.Snapshot())

	// Nothing was persisted.
	_, found, err := port.Get(ctx, store.DefaultKey)
	assert.NoError(err)
	assert.False(found)
}
