package model

import "time"

// Shared defaults used by both the TUI and the API server.
const (
	DefaultRequestTimeout = 15 * time.Second
	DefaultUserAgent      = "tabfeed/dev (+https://github.com/tinytelemetry/tabfeed)"
	DefaultSkin           = "default"
	DefaultAPIAddr        = "127.0.0.1:3000"
)
