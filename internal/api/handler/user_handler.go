package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/vidsync/pkg/response"
)

// UserInfo 用户信息（本地缓存，来自视频作者同步）
// @Summary 用户信息
// @Tags 用户
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{id} [get]
func (h *Handler) UserInfo(c *gin.Context) {
	u, err := h.users.UserInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, u)
}

// FollowedUsers 已关注用户
// @Summary 已关注用户列表
// @Tags 用户
// @Success 200 {object} response.Response
// @Router /api/v1/users/followed [get]
func (h *Handler) FollowedUsers(c *gin.Context) {
	rows, err := h.users.FollowedUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rows)
}

// FollowUser 关注/取关（仅本地状态）
// @Summary 关注状态切换
// @Tags 用户
// @Accept json
// @Param id path string true "用户ID"
// @Param request body statusRequest true "enabled=true 关注"
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id}/follow [post]
func (h *Handler) FollowUser(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.users.FollowUser(c.Request.Context(), c.Param("id"), *req.Enabled); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}
