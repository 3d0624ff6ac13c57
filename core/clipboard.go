package core

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	Write(text string) error
}

// ClipboardFunc adapts a function to the Clipboard interface.
type ClipboardFunc func(text string) error

func (f ClipboardFunc) Write(text string) error {
	return f(text)
}
