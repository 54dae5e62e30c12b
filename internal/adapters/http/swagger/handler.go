// Package swagger serves the OpenAPI description of the HTTP routes.
package swagger

import (
	"context"
	"net/http"
)

// Path is where the OpenAPI document is served.
const Path = "/openapi.yaml"

// Register attaches the OpenAPI route to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET "+Path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})
}
