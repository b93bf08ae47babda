package adaptor

import (
	"net/http"

	"go.uber.org/zap"
)

// StaticHandler serves files from a fixed document root.
type StaticHandler struct {
	root  string
	files http.Handler
	log   *zap.Logger
}

func NewStaticHandler(root string, log *zap.Logger) *StaticHandler {
	return &StaticHandler{
		root:  root,
		files: http.FileServer(http.Dir(root)),
		log:   log.With(zap.String("handler", "static")),
	}
}

// ServeFiles handles GET on any path not claimed by the API.
func (h *StaticHandler) ServeFiles(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("Serving static path",
		zap.String("root", h.root),
		zap.String("path", r.URL.Path),
	)
	h.files.ServeHTTP(w, r)
}
