package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// ConsoleHTML is the browser console served at GET /.
//
//go:embed web/index.html
var ConsoleHTML []byte
