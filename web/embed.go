// Package web embeds the static assets served next to the rendered page.
//
// Usage in the API server and the static build:
//
//	import "github.com/seenimoa/smartcam/web"
//	fs := web.StaticFS()  // io/fs.FS rooted at static/
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static
var static embed.FS

// StylesheetPath is the page stylesheet, relative to StaticFS.
const StylesheetPath = "app.css"

// StaticFS returns a filesystem rooted at the embedded static/ directory.
// This is ready to use with http.FileServerFS or http.FS.
func StaticFS() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		log.Fatalf("web.StaticFS: %v", err)
	}
	return sub
}

// Stylesheet returns the page stylesheet.
func Stylesheet() []byte {
	data, err := fs.ReadFile(StaticFS(), StylesheetPath)
	if err != nil {
		log.Fatalf("web.Stylesheet: %v", err)
	}
	return data
}
