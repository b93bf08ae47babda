package adaptor

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"cinema-listing/internal/data/repository"
	"cinema-listing/internal/dto/response"
	"cinema-listing/internal/usecase"
	"cinema-listing/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	films, err := h.service.GetMovies(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if err := utils.ResponseSuccess(w, response.MoviesToResponse(films)); err != nil {
		h.logWriteError(r, err)
	}
}

// handleServiceError answers fetch failures with 500 {error, details}.
// A request canceled by its client gets no response body.
func (h *MovieHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if repository.IsCanceled(err) {
		h.log.Warn("Client disconnected before movies were ready",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("ip", r.RemoteAddr),
		)
		return
	}

	errClass := "proxy_error"
	var fetchErr *repository.FetchError
	if errors.As(err, &fetchErr) {
		errClass = "feed_" + string(fetchErr.Class)
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("error_class", errClass),
	}
	if fetchErr != nil && fetchErr.StatusCode != 0 {
		fields = append(fields, zap.String("upstream_status", strconv.Itoa(fetchErr.StatusCode)))
	}
	if id, ok := utils.GetRequestIDFromContext(r.Context()); ok {
		fields = append(fields, zap.String("request_id", id))
	}
	h.log.Error("Failed to get movies", fields...)

	if werr := utils.ResponseInternalError(w, errClass, err.Error()); werr != nil {
		h.logWriteError(r, werr)
	}
}

// logWriteError logs a failed response write. A client that disconnected is
// not a server fault, so it is a warning.
func (h *MovieHandler) logWriteError(r *http.Request, err error) {
	if errors.Is(r.Context().Err(), context.Canceled) || isClientGone(err) {
		h.log.Warn("Client disconnected during response write",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("ip", r.RemoteAddr),
		)
		return
	}
	h.log.Error("Failed to write response", zap.Error(err), zap.String("path", r.URL.Path))
}
