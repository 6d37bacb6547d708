// Package assets exposes the compiled-in resource tree addressed as "res://".
package assets

import (
	"embed"
	"io/fs"
)

//go:embed bundled
var embedded embed.FS

// Bundled returns a sub-filesystem rooted at the bundled/ directory.
func Bundled() fs.FS {
	sub, err := fs.Sub(embedded, "bundled")
	if err != nil {
		panic("assets: sub bundled: " + err.Error())
	}
	return sub
}
