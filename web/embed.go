package web

import "embed"

// Templates holds the layout, partial and page templates for the dashboard.
//
//go:embed templates/**/*.html
var Templates embed.FS

// Static holds the assets served under /static/.
//
//go:embed static/**/*
var Static embed.FS
