package wire

import (
	"cinema-listing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireStatic(r chi.Router, staticHandler *adaptor.StaticHandler) {
	// Everything else is a file under the static root (index.html, assets).
	r.Get("/*", staticHandler.ServeFiles)
	r.Head("/*", staticHandler.ServeFiles)
}
