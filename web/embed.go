package web

import "embed"

// Static embeds the public marketing page and its assets.
//
//go:embed static/*
var Static embed.FS
