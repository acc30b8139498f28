package web

import _ "embed"

// IndexHTML is the report form served at /
//
//go:embed index.html
var IndexHTML []byte
