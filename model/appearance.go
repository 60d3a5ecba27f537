package model

// Appearance describes how a notification type is displayed.
type Appearance struct {
	Icon  string
	Color string
}

// FallbackAppearance is used for notification types that aren't in the catalog.
var FallbackAppearance = Appearance{Icon: "notifications", Color: "text-gray-500"}

var appearances = map[NotificationType]Appearance{
	TaskAssigned:     {Icon: "assignment", Color: "text-blue-500"},
	StatusUpdate:     {Icon: "update", Color: "text-indigo-500"},
	DocumentUploaded: {Icon: "upload_file", Color: "text-purple-500"},
	DocumentVerified: {Icon: "verified", Color: "text-green-500"},
	DocumentRejected: {Icon: "cancel", Color: "text-red-500"},
	StaffAssigned:    {Icon: "person_add", Color: "text-teal-500"},
	TaskCompleted:    {Icon: "task_alt", Color: "text-emerald-500"},
	DeadlineReminder: {Icon: "alarm", Color: "text-orange-500"},
	MessageReceived:  {Icon: "mail", Color: "text-sky-500"},
}

// AppearanceFor returns the icon and color for a notification type.
func AppearanceFor(notificationType NotificationType) Appearance {
	if appearance, ok := appearances[notificationType]; ok {
		return appearance
	}
	return FallbackAppearance
}

// IconFor returns the icon identifier for a notification type.
func IconFor(notificationType NotificationType) string {
	return AppearanceFor(notificationType).Icon
}

// ColorFor returns the color class for a notification type.
func ColorFor(notificationType NotificationType) string {
	return AppearanceFor(notificationType).Color
}
