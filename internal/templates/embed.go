// Package templates holds the built-in Anchor project template.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed all:anchor
var files embed.FS

// Anchor returns the built-in template tree. Paths are relative to its root,
// e.g. "programs/anchor_init/src/lib.rs.hbs".
func Anchor() fs.FS {
	sub, err := fs.Sub(files, "anchor")
	if err != nil {
		// The embedded directory always exists
		panic(err)
	}
	return sub
}
