// Package web holds the embedded HTML templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page and the shared layout blocks.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
