package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/vidsync/internal/remote"
	"github.com/d60-Lab/vidsync/internal/service"
	"github.com/d60-Lab/vidsync/pkg/response"
)

// Handler 聚合各同步服务供路由注册
type Handler struct {
	videos     service.VideoService
	categories service.CategoryService
	users      service.UserService
	history    service.WatchHistoryService
	janitor    *service.Janitor
}

func New(
	videos service.VideoService,
	categories service.CategoryService,
	users service.UserService,
	history service.WatchHistoryService,
	janitor *service.Janitor,
) *Handler {
	return &Handler{
		videos:     videos,
		categories: categories,
		users:      users,
		history:    history,
		janitor:    janitor,
	}
}

// writeError maps the engine's error taxonomy to HTTP statuses.
func writeError(c *gin.Context, err error) {
	var se *remote.StatusError
	switch {
	case service.IsValidation(err):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, remote.ErrUnreachable),
		errors.Is(err, remote.ErrTimeout),
		errors.Is(err, remote.ErrMalformedBody),
		errors.As(err, &se):
		response.BadGateway(c, err)
	default:
		response.InternalError(c, err)
	}
}
