// Package web holds the embedded page templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates returns the embedded templates rooted at the templates directory
// (base.html, pages/...).
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic("failed to sub templates FS: " + err.Error())
	}
	return sub
}

// Static returns the embedded assets rooted at the static directory, so a file
// server sees css/app.css rather than static/css/app.css.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	return sub
}
