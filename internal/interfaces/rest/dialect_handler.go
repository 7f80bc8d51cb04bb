package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/panelops/backend/internal/application/services"
	"github.com/panelops/backend/pkg/constants"
)

type DialectHandler struct {
	svcMgr *services.ServiceManager
}

func NewDialectHandler(svcMgr *services.ServiceManager) *DialectHandler {
	return &DialectHandler{svcMgr: svcMgr}
}

// AliasRequest represents an alias creation body
type AliasRequest struct {
	Category  string `json:"category" binding:"required"`
	External  string `json:"external" binding:"required"`
	Canonical string `json:"canonical" binding:"required"`
}

// FlagsRequest represents a dialect flags update body
type FlagsRequest struct {
	UseAIFallback bool `json:"use_ai_fallback"`
	AutoLearn     bool `json:"auto_learn"`
}

// Get handles GET /api/dialect
func (h *DialectHandler) Get(c *gin.Context) {
	config, err := h.svcMgr.Dialect.GetConfig(c.Request.Context(), OrganizationID(c))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": config})
}

// AddAlias handles POST /api/dialect/aliases
func (h *DialectHandler) AddAlias(c *gin.Context) {
	var req AliasRequest
	if !BindJSON(c, &req) {
		return
	}

	err := h.svcMgr.Dialect.AddAlias(c.Request.Context(), OrganizationID(c),
		constants.OperationCategory(req.Category), req.External, req.Canonical)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "alias recorded"})
}

// RemoveAlias handles DELETE /api/dialect/aliases/:category/:external
func (h *DialectHandler) RemoveAlias(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	err := h.svcMgr.Dialect.RemoveAlias(c.Request.Context(), OrganizationID(c), category, c.Param("external"))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "alias removed"})
}

// UpdateFlags handles PUT /api/dialect/flags
func (h *DialectHandler) UpdateFlags(c *gin.Context) {
	var req FlagsRequest
	if !BindJSON(c, &req) {
		return
	}

	err := h.svcMgr.Dialect.UpdateFlags(c.Request.Context(), OrganizationID(c), req.UseAIFallback, req.AutoLearn)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "dialect flags updated"})
}
