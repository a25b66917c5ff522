package ports

import "github.com/localtalent/console/internal/core/domain"

// Notifier delivers transient user feedback. Delivery is fire-and-forget.
type Notifier interface {
	Notify(n domain.Notification)
}

// Navigator performs a hard navigation, e.g. to the login route once the
// session can no longer be refreshed.
type Navigator interface {
	Navigate(route string)
}
