package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/cyverse-de/notification-preferences/feedback"
	"github.com/cyverse-de/notification-preferences/metrics"
	"github.com/cyverse-de/notification-preferences/store"
	"github.com/cyverse-de/notification-preferences/view"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"service": "notification-preferences",
	"package": "handlers",
})

// Handlers serves the notification settings panel. Every request that touches the store holds the
// mutex, so the store only ever sees one operation at a time.
type Handlers struct {
	mu       sync.Mutex
	store    *store.Store
	notifier feedback.Notifier
	metrics  *metrics.Collector
}

// New returns the handlers for the given store.
func New(s *store.Store, notifier feedback.Notifier, collector *metrics.Collector) *Handlers {
	return &Handlers{store: s, notifier: notifier, metrics: collector}
}

// Register adds the routes to the router.
func (h *Handlers) Register(router *gin.Engine) error {
	tmpl, err := view.Template()
	if err != nil {
		return errors.Wrap(err, "unable to parse the settings template")
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/settings")
	})
	router.GET("/settings", h.ShowSettings)
	router.POST("/settings", h.SubmitSettings)

	api := router.Group("/api")
	api.GET("/settings", h.GetSettings)
	api.POST("/intents", h.ApplyIntent)
	api.POST("/settings/save", h.SaveSettings)
	api.POST("/settings/reset", h.ResetSettings)

	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	return nil
}

// Load reads the persisted settings into the store. Failures fall back to the default settings and
// are reported to the user rather than returned.
func (h *Handlers) Load(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Load(ctx); err != nil {
		log.Warnf("notification settings reverted to defaults: %s", err.Error())
		h.metrics.Observe(metrics.OperationLoad, metrics.OutcomeFailure)
		h.notify(ctx, feedback.LoadFailed)
		return
	}
	h.metrics.Observe(metrics.OperationLoad, metrics.OutcomeSuccess)
}

// notify sends a feedback message, logging delivery failures.
func (h *Handlers) notify(ctx context.Context, msg feedback.Message) {
	if err := h.notifier.Notify(ctx, msg); err != nil {
		log.Errorf("unable to deliver feedback %q: %s", msg.Text, err.Error())
	}
}

// save persists the store, reporting the outcome. The caller must hold the mutex.
func (h *Handlers) save(ctx context.Context) (feedback.Message, error) {
	if err := h.store.Save(ctx); err != nil {
		h.metrics.Observe(metrics.OperationSave, metrics.OutcomeFailure)
		h.notify(ctx, feedback.SaveFailed)
		return feedback.SaveFailed, err
	}
	h.metrics.Observe(metrics.OperationSave, metrics.OutcomeSuccess)
	h.notify(ctx, feedback.Saved)
	return feedback.Saved, nil
}

// reset restores the default settings without persisting them. The caller must hold the mutex.
func (h *Handlers) reset(ctx context.Context) feedback.Message {
	h.store.Reset()
	h.metrics.Observe(metrics.OperationReset, metrics.OutcomeSuccess)
	h.notify(ctx, feedback.ResetPending)
	return feedback.ResetPending
}

// apply applies an intent to the store, counting the outcome. The caller must hold the mutex.
func (h *Handlers) apply(intent store.Intent) error {
	if err := h.store.Apply(intent); err != nil {
		h.metrics.Observe(metrics.OperationIntent, metrics.OutcomeRejected)
		return err
	}
	h.metrics.Observe(metrics.OperationIntent, metrics.OutcomeSuccess)
	return nil
}

// statusFor returns the HTTP status code that corresponds to an error returned by the store.
func statusFor(err error) int {
	var unrecoverable store.UnrecoverableError
	if errors.As(err, &unrecoverable) {
		return http.StatusBadRequest
	}
	var recoverable store.RecoverableError
	if errors.As(err, &recoverable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
