package handlers

import (
	"net/http"

	"github.com/cyverse-de/notification-preferences/feedback"
	"github.com/cyverse-de/notification-preferences/model"
	"github.com/cyverse-de/notification-preferences/store"
	"github.com/cyverse-de/notification-preferences/view"
	"github.com/gin-gonic/gin"
)

// The actions the settings form can be submitted with.
const (
	actionSave  = "save"
	actionReset = "reset"
)

// ShowSettings renders the settings panel.
func (h *Handlers) ShowSettings(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.HTML(http.StatusOK, view.TemplateName, view.Build(h.store.Snapshot(), nil))
}

// formIntents converts a submitted settings form into intents, one per row of the rendered form.
// Browsers leave unchecked and disabled checkboxes out of the submission, so per-row email toggles are
// only read if the hidden email_interactive field says they were interactive when the form was
// rendered. Forms without that field fall back to the current general email setting. Email is unlocked
// while the submitted email toggles are applied and set to its submitted value last.
func formIntents(c *gin.Context, general model.GeneralSettings, preferences []model.NotificationPreference) []store.Intent {
	checked := func(name string) bool {
		return c.PostForm(name) == "on"
	}

	emailInteractive := general.Email
	if value, ok := c.GetPostForm(view.EmailInteractiveField); ok {
		emailInteractive = value == "on"
	}

	intents := make([]store.Intent, 0, len(preferences)*2+4)
	if emailInteractive {
		intents = append(intents, store.Intent{Kind: store.SetGeneral, Field: store.FieldEmail, Value: true})
	}

	for i, preference := range preferences {
		// Stored rows outside the catalog are shown but can't be edited.
		if !model.IsKnownType(preference.Type) {
			continue
		}

		row := i
		intents = append(intents, store.Intent{
			Kind:  store.SetPreference,
			Type:  preference.Type,
			Row:   &row,
			Field: store.FieldEnabled,
			Value: checked(view.FieldName(row, store.FieldEnabled)),
		})
		if emailInteractive {
			intents = append(intents, store.Intent{
				Kind:  store.SetPreference,
				Type:  preference.Type,
				Row:   &row,
				Field: store.FieldEmail,
				Value: checked(view.FieldName(row, store.FieldEmail)),
			})
		}
	}

	for _, field := range []string{store.FieldEnabled, store.FieldSound, store.FieldEmail} {
		intents = append(intents, store.Intent{Kind: store.SetGeneral, Field: field, Value: checked(field)})
	}

	return intents
}

// SubmitSettings handles a submission of the settings form. The reset action restores the defaults and
// the save action, which is also the default, applies the submitted toggles and saves them.
func (h *Handlers) SubmitSettings(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := c.Request.Context()

	switch action := c.PostForm("action"); action {
	case actionReset:
		msg := h.reset(ctx)
		c.HTML(http.StatusOK, view.TemplateName, view.Build(h.store.Snapshot(), &msg))
		return
	case actionSave, "":
	default:
		msg := feedback.Message{Level: feedback.LevelError, Text: "unsupported action: " + action}
		c.HTML(http.StatusBadRequest, view.TemplateName, view.Build(h.store.Snapshot(), &msg))
		return
	}

	for _, intent := range formIntents(c, h.store.General(), h.store.Preferences()) {
		if err := h.apply(intent); err != nil {
			log.Warnf("rejected form intent %+v: %s", intent, err.Error())
			msg := feedback.Message{Level: feedback.LevelError, Text: err.Error()}
			c.HTML(statusFor(err), view.TemplateName, view.Build(h.store.Snapshot(), &msg))
			return
		}
	}

	msg, err := h.save(ctx)
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	c.HTML(status, view.TemplateName, view.Build(h.store.Snapshot(), &msg))
}
