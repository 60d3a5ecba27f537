// Package view turns notification settings into the model that the settings panel is rendered from.
package view

import (
	"embed"
	"html/template"
	"strconv"

	"github.com/cyverse-de/notification-preferences/feedback"
	"github.com/cyverse-de/notification-preferences/model"
)

// TemplateName is the name of the settings panel template.
const TemplateName = "settings.html"

//go:embed templates/*.html
var templateFS embed.FS

// Toggle is a single checkbox in the settings panel.
type Toggle struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Checked  bool   `json:"checked"`
	Disabled bool   `json:"disabled"`
}

// Row is the part of the settings panel that belongs to one preference entry.
type Row struct {
	Index       int                    `json:"index"`
	Type        model.NotificationType `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Icon        string                 `json:"icon"`
	Color       string                 `json:"color"`
	InApp       Toggle                 `json:"in_app"`
	Email       Toggle                 `json:"email"`
	Push        bool                   `json:"push"`
}

// EmailInteractiveField is the hidden form field recording whether the per-type email toggles were
// interactive when the form was rendered.
const EmailInteractiveField = "email_interactive"

// Model is everything needed to render the settings panel.
type Model struct {
	General          []Toggle          `json:"general"`
	EmailInteractive bool              `json:"email_interactive"`
	Rows             []Row             `json:"preferences"`
	Flash            *feedback.Message `json:"message,omitempty"`
}

// FieldName returns the form field name used for a toggle in the preference row at the given position.
func FieldName(row int, field string) string {
	return "preferences." + strconv.Itoa(row) + "." + field
}

// Build creates the view model for the given settings. Per-type email toggles are disabled whenever
// email is turned off in the general settings.
func Build(settings model.PersistedSettings, flash *feedback.Message) *Model {
	general := settings.General
	m := &Model{
		General: []Toggle{
			{Name: "enabled", Label: "Enable notifications", Checked: general.Enabled},
			{Name: "sound", Label: "Play sound", Checked: general.Sound},
			{Name: "email", Label: "Email notifications", Checked: general.Email},
		},
		EmailInteractive: general.Email,
		Rows:             make([]Row, 0, len(settings.Preferences)),
		Flash:            flash,
	}

	for i, preference := range settings.Preferences {
		appearance := model.AppearanceFor(preference.Type)
		m.Rows = append(m.Rows, Row{
			Index:       i,
			Type:        preference.Type,
			Title:       preference.Title,
			Description: preference.Description,
			Icon:        appearance.Icon,
			Color:       appearance.Color,
			InApp: Toggle{
				Name:    FieldName(i, "enabled"),
				Label:   "In-app",
				Checked: preference.Enabled,
			},
			Email: Toggle{
				Name:     FieldName(i, "email"),
				Label:    "Email",
				Checked:  preference.Email,
				Disabled: !general.Email,
			},
			Push: preference.Push,
		})
	}

	return m
}

// Template parses the embedded settings panel template.
func Template() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
