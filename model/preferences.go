package model

// NotificationType identifies one notification category.
type NotificationType string

// The known notification types, in catalog order.
const (
	TaskAssigned     NotificationType = "TASK_ASSIGNED"
	StatusUpdate     NotificationType = "STATUS_UPDATE"
	DocumentUploaded NotificationType = "DOCUMENT_UPLOADED"
	DocumentVerified NotificationType = "DOCUMENT_VERIFIED"
	DocumentRejected NotificationType = "DOCUMENT_REJECTED"
	StaffAssigned    NotificationType = "STAFF_ASSIGNED"
	TaskCompleted    NotificationType = "TASK_COMPLETED"
	DeadlineReminder NotificationType = "DEADLINE_REMINDER"
	MessageReceived  NotificationType = "MESSAGE_RECEIVED"
)

// GeneralSettings represents the notification behavior that applies across all categories.
type GeneralSettings struct {
	Enabled bool `json:"enabled"`
	Sound   bool `json:"sound"`
	Email   bool `json:"email"`
}

// NotificationPreference represents the delivery configuration for a single notification category.
type NotificationPreference struct {
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Enabled     bool             `json:"enabled"`
	Email       bool             `json:"email"`
	Push        bool             `json:"push"`
}

// PersistedSettings is the form in which notification settings are written to storage.
type PersistedSettings struct {
	General     GeneralSettings          `json:"general"`
	Preferences []NotificationPreference `json:"preferences"`
}

// DefaultGeneralSettings returns the general settings used before anything has been saved.
func DefaultGeneralSettings() GeneralSettings {
	return GeneralSettings{Enabled: true, Sound: true, Email: false}
}

// catalog lists every known notification type along with its default preferences.
var catalog = []NotificationPreference{
	{
		Type:        TaskAssigned,
		Title:       "Task Assignments",
		Description: "When a task is assigned to you",
		Enabled:     true,
		Email:       false,
		Push:        true,
	},
	{
		Type:        StatusUpdate,
		Title:       "Status Updates",
		Description: "When the status of one of your requests changes",
		Enabled:     true,
		Email:       false,
		Push:        true,
	},
	{
		Type:        DocumentUploaded,
		Title:       "Document Uploads",
		Description: "When a new document is uploaded",
		Enabled:     true,
		Email:       false,
		Push:        true,
	},
	{
		Type:        DocumentVerified,
		Title:       "Document Verification",
		Description: "When one of your documents is verified",
		Enabled:     true,
		Email:       true,
		Push:        true,
	},
	{
		Type:        DocumentRejected,
		Title:       "Document Rejection",
		Description: "When one of your documents is rejected",
		Enabled:     true,
		Email:       true,
		Push:        true,
	},
	{
		Type:        StaffAssigned,
		Title:       "Staff Assignment",
		Description: "When a staff member is assigned to your case",
		Enabled:     true,
		Email:       true,
		Push:        true,
	},
	{
		Type:        TaskCompleted,
		Title:       "Task Completion",
		Description: "When a task you follow is completed",
		Enabled:     true,
		Email:       true,
		Push:        true,
	},
	{
		Type:        DeadlineReminder,
		Title:       "Deadline Reminders",
		Description: "Reminders about upcoming deadlines",
		Enabled:     true,
		Email:       true,
		Push:        true,
	},
	{
		Type:        MessageReceived,
		Title:       "Messages",
		Description: "When you receive a new message",
		Enabled:     true,
		Email:       false,
		Push:        true,
	},
}

// importantTypes are the notification types that get email delivery when preferences are reset.
var importantTypes = map[NotificationType]bool{
	DocumentVerified: true,
	DocumentRejected: true,
	StaffAssigned:    true,
	TaskCompleted:    true,
	DeadlineReminder: true,
}

// Catalog returns a fresh copy of the default preferences for every known notification type.
func Catalog() []NotificationPreference {
	result := make([]NotificationPreference, len(catalog))
	copy(result, catalog)
	return result
}

// IsKnownType returns true if the notification type is in the catalog.
func IsKnownType(notificationType NotificationType) bool {
	for _, entry := range catalog {
		if entry.Type == notificationType {
			return true
		}
	}
	return false
}

// IsImportant returns true if email delivery is enabled for the notification type by default.
func IsImportant(notificationType NotificationType) bool {
	return importantTypes[notificationType]
}

// DefaultSettings returns the complete set of default notification settings.
func DefaultSettings() PersistedSettings {
	return PersistedSettings{
		General:     DefaultGeneralSettings(),
		Preferences: Catalog(),
	}
}
