// Package web holds the HTML templates. Every template is defined under
// its full name, e.g. "posts/index.html".
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates
var templatesFS embed.FS

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
	"truncate": func(s string, n int) string {
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		return string(runes[:n]) + "…"
	},
}

func Templates() (*template.Template, error) {
	return template.New("").Funcs(functions).ParseFS(
		templatesFS,
		"templates/includes/*.html",
		"templates/core/*.html",
		"templates/posts/*.html",
		"templates/users/*.html",
	)
}
