package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/vidsync/internal/api/middleware"
	"github.com/d60-Lab/vidsync/pkg/response"
)

type progressRequest struct {
	VideoID   string `json:"video_id" binding:"required"`
	Progress  int64  `json:"progress"`
	Duration  int64  `json:"duration"`
	Completed bool   `json:"completed"`
}

// UpdateProgress 上报观看进度（以 (videoId, userId) 为键替换）
// @Summary 上报观看进度
// @Tags 历史
// @Accept json
// @Param request body progressRequest true "进度信息"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/history/progress [post]
func (h *Handler) UpdateProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.history.UpdateWatchProgress(c.Request.Context(),
		req.VideoID, middleware.UserID(c), req.Progress, req.Duration, req.Completed)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

// History 当前用户观看历史（按观看时间倒序）
// @Summary 观看历史
// @Tags 历史
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/history [get]
func (h *Handler) History(c *gin.Context) {
	rows, err := h.history.History(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rows)
}

// RecentHistory 最近观看
// @Summary 最近观看（默认 20 条）
// @Tags 历史
// @Param limit query int false "返回条数" default(20)
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/history/recent [get]
func (h *Handler) RecentHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	rows, err := h.history.RecentHistory(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rows)
}

// Progress 单条进度查询
// @Summary 某视频的观看进度
// @Tags 历史
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/history/{videoId} [get]
func (h *Handler) Progress(c *gin.Context) {
	row, err := h.history.Progress(c.Request.Context(), c.Param("videoId"), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, row)
}

// ClearHistory 清空当前用户历史
// @Summary 清空观看历史
// @Tags 历史
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/history [delete]
func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.history.ClearUser(c.Request.Context(), middleware.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

// Purge 手动触发一次过期清理
// @Summary 立即执行缓存过期清理
// @Tags 运维
// @Success 200 {object} response.Response
// @Router /api/v1/admin/purge [post]
func (h *Handler) Purge(c *gin.Context) {
	stats, err := h.janitor.PurgeOnce(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"videos":  stats.Videos,
		"users":   stats.Users,
		"history": stats.History,
	})
}
