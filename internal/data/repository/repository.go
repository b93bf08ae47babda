package repository

import (
	"cinema-listing/pkg/utils"

	"go.uber.org/zap"
)

type Repository struct {
	Feed FeedRepository
}

func NewRepository(config *utils.Config, log *zap.Logger) *Repository {
	return &Repository{
		Feed: NewFeedRepository(config.Feed, log),
	}
}
