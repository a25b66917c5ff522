package domain

// Routes the client navigates to as part of the session lifecycle.
const (
	RouteLogin = "/auth/login"
	RouteAdmin = "/admin"
)

// NotificationVariant selects how a transient notification is presented.
type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantDestructive NotificationVariant = "destructive"
)

// Notification is transient user feedback emitted by the request helper.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
}
