package wire

import (
	"cinema-listing/internal/adaptor"
	"cinema-listing/pkg/middleware"
	"cinema-listing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MoviesPath is the listing API route.
const MoviesPath = "/api/movies"

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// GET /api/movies - fetch, transform and return the listing.
	// Every call hits the upstream feed, so it is rate limited per client IP.
	r.With(middleware.RateLimit(config.RateLimit.Requests, config.RateLimit.Window, log)).
		Get(MoviesPath, movieHandler.GetMovies)
}
