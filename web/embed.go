// Package web holds the browser UI served at /.
package web

import "embed"

//go:embed index.html
var Files embed.FS
