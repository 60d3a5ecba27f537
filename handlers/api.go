package handlers

import (
	"net/http"

	"github.com/cyverse-de/notification-preferences/feedback"
	"github.com/cyverse-de/notification-preferences/store"
	"github.com/cyverse-de/notification-preferences/view"
	"github.com/gin-gonic/gin"
)

// GetSettings responds with the view model for the current settings.
func (h *Handlers) GetSettings(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.JSON(http.StatusOK, view.Build(h.store.Snapshot(), nil))
}

// ApplyIntent applies a single intent from the request body and responds with the updated view model.
func (h *Handlers) ApplyIntent(c *gin.Context) {
	var intent store.Intent
	if err := c.ShouldBindJSON(&intent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid intent: " + err.Error()})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.apply(intent); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	var flash *feedback.Message
	if intent.Kind == store.ResetDefaults {
		msg := feedback.ResetPending
		flash = &msg
	}
	c.JSON(http.StatusOK, view.Build(h.store.Snapshot(), flash))
}

// SaveSettings persists the current settings.
func (h *Handlers) SaveSettings(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg, err := h.save(c.Request.Context())
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	c.JSON(status, view.Build(h.store.Snapshot(), &msg))
}

// ResetSettings restores the default settings. The defaults aren't persisted until they're saved.
func (h *Handlers) ResetSettings(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := h.reset(c.Request.Context())
	c.JSON(http.StatusOK, view.Build(h.store.Snapshot(), &msg))
}
