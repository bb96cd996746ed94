package web

import "embed"

// StaticFS holds the embedded static assets served under /static/.
//
//go:embed static/*
var StaticFS embed.FS

// templatesFS holds the layout shell and page templates.
//
//go:embed templates/*.html
var templatesFS embed.FS

// aboutMarkdown is the About page source, rendered per request.
//
//go:embed content/about.md
var aboutMarkdown string
