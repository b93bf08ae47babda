package usecase

import (
	"context"
	"fmt"

	"cinema-listing/internal/data/entity"
	"cinema-listing/internal/data/repository"
	"cinema-listing/pkg/metrics"

	"go.uber.org/zap"
)

type MovieService interface {
	// GetMovies fetches the feed and returns the films that have showtimes.
	// Only fetch failures are returned as errors; an unparseable feed yields
	// an empty list.
	GetMovies(ctx context.Context) ([]entity.Film, error)
}

type movieService struct {
	feed repository.FeedRepository
	log  *zap.Logger
}

func NewMovieService(
	feed repository.FeedRepository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		feed: feed,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context) ([]entity.Film, error) {
	raw, err := s.feed.Fetch(ctx)
	if repository.IsCanceled(err) {
		s.log.Warn("Client disconnected during feed fetch", zap.Error(err))
		return nil, fmt.Errorf("get movies: %w", err)
	}
	if err != nil {
		s.log.Error("Failed to fetch feed", zap.Error(err))
		return nil, fmt.Errorf("get movies: %w", err)
	}

	result := TransformFeed(raw)
	metrics.RecordTransform(string(result.Outcome), len(result.Films))

	switch result.Outcome {
	case OutcomeUnparseable:
		s.log.Warn("Feed could not be parsed, returning empty listing",
			zap.Error(result.Err),
			zap.Int("bytes", len(raw)),
		)
	case OutcomeEmpty:
		s.log.Info("Feed contained no films with showtimes",
			zap.Int("films_seen", result.Stats.FilmsSeen),
			zap.Int("performances_seen", result.Stats.PerformancesSeen),
		)
	default:
		s.log.Info("Movies retrieved", zap.Int("count", len(result.Films)))
	}

	s.log.Debug("Feed transform stats",
		zap.Int("films_seen", result.Stats.FilmsSeen),
		zap.Int("films_without_code", result.Stats.FilmsWithoutCode),
		zap.Int("duplicate_film_codes", result.Stats.DuplicateFilmCodes),
		zap.Int("performances_seen", result.Stats.PerformancesSeen),
		zap.Int("unknown_film_code", result.Stats.UnknownFilmCode),
		zap.Int("missing_date_or_time", result.Stats.MissingDateOrTime),
		zap.Int("films_without_showtime", result.Stats.FilmsWithoutShowtime),
	)

	return result.Films, nil
}
