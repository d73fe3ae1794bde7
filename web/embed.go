// Package web holds the page served at the site root.
package web

import "embed"

//go:embed index.html
var Files embed.FS
