package repository

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cinema-listing/pkg/metrics"
	"cinema-listing/pkg/utils"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// FeedRepository retrieves the raw vendor XML feed.
type FeedRepository interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type feedRepository struct {
	client  *http.Client
	config  utils.FeedConfig
	breaker *gobreaker.CircuitBreaker[[]byte]
	log     *zap.Logger
}

func NewFeedRepository(config utils.FeedConfig, log *zap.Logger) FeedRepository {
	return NewFeedRepositoryWithClient(config, newFeedClient(config), log)
}

// NewFeedRepositoryWithClient uses client as-is; the TLS and timeout settings
// in config are not applied to it.
func NewFeedRepositoryWithClient(config utils.FeedConfig, client *http.Client, log *zap.Logger) FeedRepository {
	log = log.With(zap.String("repository", "feed"))

	if config.InsecureSkipVerify {
		log.Warn("TLS certificate verification disabled for feed upstream",
			zap.String("url", config.URL))
	}

	r := &feedRepository{
		client: client,
		config: config,
		log:    log,
	}
	if config.BreakerEnabled {
		r.breaker = newFeedBreaker("feed-upstream", log)
	}
	return r
}

func newFeedClient(config utils.FeedConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: config.InsecureSkipVerify,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}
}

// Fetch performs one GET of the feed URL. Every error is a *FetchError.
func (r *feedRepository) Fetch(ctx context.Context) ([]byte, error) {
	start := time.Now()

	var body []byte
	var err error
	if r.breaker != nil {
		body, err = r.breaker.Execute(func() ([]byte, error) {
			return r.fetch(ctx)
		})
		err = classifyBreakerError(err)
	} else {
		body, err = r.fetch(ctx)
	}

	duration := time.Since(start)
	if IsCanceled(err) {
		r.log.Debug("Feed fetch canceled by caller", zap.Duration("duration", duration))
		return nil, err
	}
	if err != nil {
		class := FetchNetwork
		var fe *FetchError
		if errors.As(err, &fe) {
			class = fe.Class
		}
		metrics.RecordFeedFetch(duration, 0, string(class))
		return nil, err
	}

	metrics.RecordFeedFetch(duration, len(body), "")
	r.log.Debug("Feed fetched",
		zap.Int("bytes", len(body)),
		zap.Duration("duration", duration),
	)

	return body, nil
}

func (r *feedRepository) fetch(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.URL, nil)
	if err != nil {
		return nil, &FetchError{Class: FetchNetwork, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/xml, text/xml;q=0.9, */*;q=0.8")
	if r.config.UserAgent != "" {
		req.Header.Set("User-Agent", r.config.UserAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{
			Class:      FetchUpstreamStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("upstream returned %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.config.MaxBodyBytes+1))
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, &FetchError{Class: FetchCanceled, Err: fmt.Errorf("read body: %w", err)}
		}
		if ctx.Err() != nil {
			return nil, &FetchError{Class: FetchTimeout, Err: fmt.Errorf("read body: %w", err)}
		}
		return nil, &FetchError{Class: FetchBodyRead, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > r.config.MaxBodyBytes {
		return nil, &FetchError{
			Class: FetchBodyRead,
			Err:   fmt.Errorf("feed body exceeds %d bytes", r.config.MaxBodyBytes),
		}
	}

	return body, nil
}
