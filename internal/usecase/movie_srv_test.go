package usecase

import (
	"context"
	"errors"
	"testing"

	"cinema-listing/internal/data/repository"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeFeed struct {
	body  []byte
	err   error
	calls int
}

func (f *fakeFeed) Fetch(ctx context.Context) ([]byte, error) {
	f.calls++
	return f.body, f.err
}

const oneFilmFeed = `<Feed><Films><Film><Code>F1</Code><FilmTitle>Test</FilmTitle></Film></Films><Performances><Performance><FilmCode>F1</FilmCode><PerformDate>2025-09-26</PerformDate><StartTime>20:00:00</StartTime></Performance></Performances></Feed>`

func TestMovieService_GetMovies(t *testing.T) {
	feed := &fakeFeed{body: []byte(oneFilmFeed)}
	svc := NewMovieService(feed, zap.NewNop())

	films, err := svc.GetMovies(context.Background())
	if err != nil {
		t.Fatalf("GetMovies() error = %v", err)
	}
	if len(films) != 1 || films[0].Code != "F1" {
		t.Errorf("GetMovies() = %+v, want one film F1", films)
	}
	if feed.calls != 1 {
		t.Errorf("feed fetched %d times, want 1", feed.calls)
	}
}

func TestMovieService_EveryCallFetches(t *testing.T) {
	feed := &fakeFeed{body: []byte(oneFilmFeed)}
	svc := NewMovieService(feed, zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := svc.GetMovies(context.Background()); err != nil {
			t.Fatalf("GetMovies() error = %v", err)
		}
	}
	if feed.calls != 3 {
		t.Errorf("feed fetched %d times, want 3", feed.calls)
	}
}

func TestMovieService_FetchErrorPropagates(t *testing.T) {
	feed := &fakeFeed{err: &repository.FetchError{Class: repository.FetchTimeout, Err: context.DeadlineExceeded}}
	svc := NewMovieService(feed, zap.NewNop())

	films, err := svc.GetMovies(context.Background())
	if err == nil {
		t.Fatal("GetMovies() error = nil, want fetch error")
	}
	if films != nil {
		t.Errorf("films = %v, want nil on error", films)
	}

	var fe *repository.FetchError
	if !errors.As(err, &fe) || fe.Class != repository.FetchTimeout {
		t.Errorf("error %v does not carry the timeout FetchError", err)
	}
}

func TestMovieService_UnparseableFeedIsEmptyNotError(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	feed := &fakeFeed{body: []byte(`<Feed><Films>`)}
	svc := NewMovieService(feed, zap.New(core))

	films, err := svc.GetMovies(context.Background())
	if err != nil {
		t.Fatalf("GetMovies() error = %v, want nil", err)
	}
	if films == nil || len(films) != 0 {
		t.Errorf("films = %v, want empty non-nil slice", films)
	}
	if n := logs.FilterMessage("Feed could not be parsed, returning empty listing").Len(); n != 1 {
		t.Errorf("got %d parse warnings, want 1", n)
	}
	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 0 {
		t.Errorf("got %d error logs, want 0", n)
	}
}

func TestMovieService_CanceledFetchIsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	feed := &fakeFeed{err: &repository.FetchError{Class: repository.FetchCanceled, Err: context.Canceled}}
	svc := NewMovieService(feed, zap.New(core))

	_, err := svc.GetMovies(context.Background())
	if !repository.IsCanceled(err) {
		t.Fatalf("GetMovies() error = %v, want a canceled fetch", err)
	}
	if logs.FilterMessage("Client disconnected during feed fetch").FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Error("canceled fetch was not logged as a warning")
	}
	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 0 {
		t.Errorf("got %d error logs, want 0", n)
	}
}
