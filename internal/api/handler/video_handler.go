package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/vidsync/internal/result"
	"github.com/d60-Lab/vidsync/pkg/response"
)

var validate = validator.New()

type statusRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type searchQuery struct {
	Query string `form:"query" validate:"required,min=2"`
}

// Feed 获取推荐视频流
// @Summary 推荐视频流（cache-then-network）
// @Tags 视频
// @Produce json
// @Param refresh query bool false "跳过缓存直接刷新" default(false)
// @Param next query string false "上一页返回的 nextPageUrl"
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /api/v1/videos/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	refresh := c.Query("refresh") == "true"
	next := c.Query("next")
	data, stale, err := result.Collect(c.Request.Context(), h.videos.FeedVideos(c.Request.Context(), refresh, next))
	if err != nil {
		writeError(c, err)
		return
	}
	if stale {
		response.SuccessStale(c, data)
		return
	}
	response.Success(c, data)
}

// VideosByCategory 分类下的视频
// @Summary 分类视频列表（cache-then-network）
// @Tags 视频
// @Param id path string true "分类ID"
// @Success 200 {object} response.Response
// @Router /api/v1/categories/{id}/videos [get]
func (h *Handler) VideosByCategory(c *gin.Context) {
	stream := h.videos.VideosByCategory(c.Request.Context(), c.Param("id"))
	data, stale, err := result.Collect(c.Request.Context(), stream)
	if err != nil {
		writeError(c, err)
		return
	}
	if stale {
		response.SuccessStale(c, data)
		return
	}
	response.Success(c, data)
}

// Search 搜索视频
// @Summary 搜索视频（本地 LIKE 缓存 + 远端搜索）
// @Tags 视频
// @Param query query string true "关键词，至少 2 个字符"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/videos/search [get]
func (h *Handler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := validate.Struct(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	stream := h.videos.SearchVideos(c.Request.Context(), q.Query)
	data, stale, err := result.Collect(c.Request.Context(), stream)
	if err != nil {
		writeError(c, err)
		return
	}
	if stale {
		response.SuccessStale(c, data)
		return
	}
	response.Success(c, data)
}

// VideoDetail 视频详情
// @Summary 视频详情（缓存命中即返回，不触网）
// @Tags 视频
// @Param id path string true "视频ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/videos/{id} [get]
func (h *Handler) VideoDetail(c *gin.Context) {
	v, err := h.videos.VideoDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, v)
}

// Related 相关视频
// @Summary 相关视频推荐
// @Tags 视频
// @Param id path string true "视频ID"
// @Success 200 {object} response.Response
// @Router /api/v1/videos/{id}/related [get]
func (h *Handler) Related(c *gin.Context) {
	stream := h.videos.RelatedVideos(c.Request.Context(), c.Param("id"))
	data, _, err := result.Collect(c.Request.Context(), stream)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, data)
}

// Like 点赞/取消点赞（仅本地状态）
// @Summary 点赞状态切换
// @Tags 视频
// @Accept json
// @Param id path string true "视频ID"
// @Param request body statusRequest true "enabled=true 点赞"
// @Success 200 {object} response.Response
// @Router /api/v1/videos/{id}/like [post]
func (h *Handler) Like(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.videos.LikeVideo(c.Request.Context(), c.Param("id"), *req.Enabled); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

// Favorite 收藏/取消收藏（仅本地状态）
// @Summary 收藏状态切换
// @Tags 视频
// @Accept json
// @Param id path string true "视频ID"
// @Param request body statusRequest true "enabled=true 收藏"
// @Success 200 {object} response.Response
// @Router /api/v1/videos/{id}/favorite [post]
func (h *Handler) Favorite(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.videos.FavoriteVideo(c.Request.Context(), c.Param("id"), *req.Enabled); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

// Liked 已点赞列表
// @Summary 已点赞视频
// @Tags 视频
// @Success 200 {object} response.Response
// @Router /api/v1/videos/liked [get]
func (h *Handler) Liked(c *gin.Context) {
	rows, err := h.videos.LikedVideos(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rows)
}

// Favorites 收藏列表
// @Summary 收藏的视频
// @Tags 视频
// @Success 200 {object} response.Response
// @Router /api/v1/videos/favorites [get]
func (h *Handler) Favorites(c *gin.Context) {
	rows, err := h.videos.FavoriteVideos(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rows)
}
