package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/panelops/backend/internal/application/services"
	"github.com/panelops/backend/pkg/constants"
	"github.com/panelops/backend/pkg/errors"
)

// maxBatchSize caps one batch resolution request
const maxBatchSize = 500

type ResolveHandler struct {
	svcMgr *services.ServiceManager
}

func NewResolveHandler(svcMgr *services.ServiceManager) *ResolveHandler {
	return &ResolveHandler{svcMgr: svcMgr}
}

// ResolveRequest represents a single resolution request body
type ResolveRequest struct {
	Category string `json:"category" binding:"required"`
	Notation string `json:"notation" binding:"required"`
}

// BatchResolveRequest represents a batch resolution request body
type BatchResolveRequest struct {
	Category  string   `json:"category" binding:"required"`
	Notations []string `json:"notations" binding:"required"`
}

// Resolve handles POST /api/resolve
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if !BindJSON(c, &req) {
		return
	}

	resolution, err := h.svcMgr.Resolution.ResolveAndLearn(
		c.Request.Context(), OrganizationID(c), constants.OperationCategory(req.Category), req.Notation)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resolution})
}

// ResolveBatch handles POST /api/resolve/batch
func (h *ResolveHandler) ResolveBatch(c *gin.Context) {
	var req BatchResolveRequest
	if !BindJSON(c, &req) {
		return
	}
	if len(req.Notations) == 0 {
		RespondAppError(c, errors.NewValidationError("notations", "is required"))
		return
	}
	if len(req.Notations) > maxBatchSize {
		RespondAppError(c, errors.NewValidationError("notations", "batch too large"))
		return
	}

	results := h.svcMgr.Resolution.ResolveBatch(
		c.Request.Context(), OrganizationID(c), constants.OperationCategory(req.Category), req.Notations)
	c.JSON(http.StatusOK, gin.H{"data": results})
}
