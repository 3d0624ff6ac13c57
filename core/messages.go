package core

var (
	CopySucceededMessage = "Code copied to clipboard"
	CopyFailedMessage    = "Failed to copy code"
	WrapEnabledMessage   = "Code wrap enabled"
	WrapDisabledMessage  = "Code wrap disabled"
	LoadingMessage       = "Loading code block..."
	ReloadFailedMessage  = "Reload failed"
)
