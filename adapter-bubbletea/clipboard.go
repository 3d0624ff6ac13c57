package bubble_adapter

import (
	"github.com/atotto/clipboard"
	"github.com/ionut-t/codeblock/core"
)

// SystemClipboard writes to the operating system clipboard.
var SystemClipboard core.Clipboard = core.ClipboardFunc(clipboard.WriteAll)
