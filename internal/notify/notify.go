package notify

// Notifier shows a short message to the user.
type Notifier interface {
	Show(title, message string) error
}

// AppID is the application name notifications are shown under.
const AppID = "Overlay Hijack"
