package port

// SessionStore is a synchronous string key-value store holding the session
// record. It mirrors the host's local storage: reads never block and a
// missing key is not an error.
type SessionStore interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string)
	RemoveItem(key string)
}

// Navigator triggers navigation to a path. Controllers receive it by
// reference; there is no ambient process-wide entry point.
type Navigator interface {
	// OnNavigate mounts the view registered for the path and returns the
	// rendered markup.
	OnNavigate(path string) string
}
