package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/**
var staticFS embed.FS

// FS returns an http.FileSystem for the embedded assets.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return http.FS(staticFS)
	}
	return http.FS(sub)
}

// Stylesheet returns the embedded page stylesheet.
func Stylesheet() []byte {
	b, err := staticFS.ReadFile("static/style.css")
	if err != nil {
		return nil
	}
	return b
}
