package adaptor

import (
	"cinema-listing/internal/usecase"
	"cinema-listing/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Movie  *MovieHandler
	Static *StaticHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Movie:  NewMovieHandler(service.Movie, log),
		Static: NewStaticHandler(config.Static.Root, log),
	}
}
