// Package site serves the embedded static assets.
package site

import (
	"context"
	"net/http"
)

// Prefix is the URL path the assets are served under.
const Prefix = "/static/"

// Register attaches the static asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET "+Prefix, http.StripPrefix(Prefix, http.FileServer(FS())))
}
