package platform

import "time"

// AppName is reported to the notification service as the sender.
const AppName = "Snapmark"

// DefaultTimeout is how long a notification stays up when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Timeout is the display time; negative leaves it to the server.
	Timeout time.Duration
}

func (o Options) expireMillis() int32 {
	switch {
	case o.Timeout < 0:
		return -1
	case o.Timeout == 0:
		return int32(DefaultTimeout / time.Millisecond)
	}
	return int32(o.Timeout / time.Millisecond)
}
