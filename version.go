package tagmeta

import _ "embed"

//go:embed Version
var Version string
