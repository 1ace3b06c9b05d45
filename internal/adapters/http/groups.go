package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/bitefinder/server/internal/app"
	"github.com/bitefinder/server/internal/domain"
)

type GroupHandler struct {
	Orch *app.Orchestrator
}

type createGroupRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
}

func (h *GroupHandler) Create(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and username required"})
		return
	}
	if !actingUser(c, req.Username) {
		return
	}

	g, err := h.Orch.CreateGroup(c.Request.Context(), req.Name, req.Username)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Group created successfully",
		"group": gin.H{
			"code":             g.Code,
			"name":             g.Name,
			"creator_username": g.Creator,
			"status":           g.Status,
		},
	})
}

type joinGroupRequest struct {
	Code     domain.GroupCode `json:"code" binding:"required"`
	Username string           `json:"username" binding:"required"`
}

func (h *GroupHandler) Join(c *gin.Context) {
	var req joinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and username required"})
		return
	}
	if !actingUser(c, req.Username) {
		return
	}

	g, err := h.Orch.JoinGroup(c.Request.Context(), req.Code, req.Username)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully joined group",
		"group": gin.H{
			"code":   g.Code,
			"name":   g.Name,
			"status": g.Status,
		},
	})
}

func (h *GroupHandler) Get(c *gin.Context) {
	g, members, err := h.Orch.GroupWithMembers(c.Request.Context(), domain.GroupCode(c.Param("code")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":             g.Code,
		"name":             g.Name,
		"status":           g.Status,
		"creator_username": g.Creator,
		"max_members":      g.MaxMembers,
		"created_at":       g.CreatedAt,
		"members":          members,
	})
}

func (h *GroupHandler) Members(c *gin.Context) {
	_, members, err := h.Orch.GroupWithMembers(c.Request.Context(), domain.GroupCode(c.Param("code")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

type readyRequest struct {
	Username string `json:"username" binding:"required"`
	IsReady  *bool  `json:"is_ready" binding:"required"`
}

func (h *GroupHandler) Ready(c *gin.Context) {
	var req readyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and is_ready required"})
		return
	}
	if !actingUser(c, req.Username) {
		return
	}

	res, err := h.Orch.SetReady(c.Request.Context(), domain.GroupCode(c.Param("code")), req.Username, *req.IsReady)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Ready status updated",
		"all_ready":    res.AllReady,
		"member_count": res.MemberCount,
	})
}

type leaveRequest struct {
	Username string `json:"username" binding:"required"`
}

func (h *GroupHandler) Leave(c *gin.Context) {
	var req leaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
		return
	}
	if !actingUser(c, req.Username) {
		return
	}

	code := domain.GroupCode(c.Param("code"))
	g, err := h.Orch.Groups.FindGroupByCode(c.Request.Context(), code)
	if err != nil {
		abortWithError(c, err)
		return
	}
	dissolved := g != nil && g.IsHost(req.Username)

	if err := h.Orch.Leave(c.Request.Context(), code, req.Username); err != nil {
		abortWithError(c, err)
		return
	}
	msg := "Successfully left group"
	if dissolved {
		msg = "Group dissolved"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "dissolved": dissolved})
}

func (h *GroupHandler) Reset(c *gin.Context) {
	var req leaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
		return
	}
	if !actingUser(c, req.Username) {
		return
	}

	if err := h.Orch.Reset(c.Request.Context(), domain.GroupCode(c.Param("code")), req.Username); err != nil {
		abortWithError(c, err)
		return
	}
	log.Info().Str("module", "adapters.http").Str("group", c.Param("code")).Msg("group reset via REST")
	c.JSON(http.StatusOK, gin.H{"message": "Group reset"})
}
