package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/vidsync/internal/result"
	"github.com/d60-Lab/vidsync/pkg/response"
)

// Categories 分类列表
// @Summary 分类列表（cache-then-network，按 sortOrder 排序）
// @Tags 分类
// @Param refresh query bool false "跳过缓存" default(false)
// @Success 200 {object} response.Response
// @Router /api/v1/categories [get]
func (h *Handler) Categories(c *gin.Context) {
	refresh := c.Query("refresh") == "true"
	data, stale, err := result.Collect(c.Request.Context(), h.categories.Categories(c.Request.Context(), refresh))
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

// SelectedCategories 已选中的分类
// @Summary 已选中分类
// @Tags 分类
// @Success 200 {object} response.Response
// @Router /api/v1/categories/selected [get]
func (h *Handler) SelectedCategories(c *gin.Context) {
	rows, err := h.categories.SelectedCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rows)
}

// SelectCategory 切换分类选中状态（仅本地）
// @Summary 分类选中切换
// @Tags 分类
// @Accept json
// @Param id path string true "分类ID"
// @Param request body statusRequest true "enabled=true 选中"
// @Success 200 {object} response.Response
// @Router /api/v1/categories/{id}/select [post]
func (h *Handler) SelectCategory(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.categories.SelectCategory(c.Request.Context(), c.Param("id"), *req.Enabled); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}
