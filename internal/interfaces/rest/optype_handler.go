package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/panelops/backend/internal/application/services"
	"github.com/panelops/backend/internal/domain/models"
)

type OperationTypeHandler struct {
	svcMgr *services.ServiceManager
}

func NewOperationTypeHandler(svcMgr *services.ServiceManager) *OperationTypeHandler {
	return &OperationTypeHandler{svcMgr: svcMgr}
}

// List handles GET /api/optypes/:category
func (h *OperationTypeHandler) List(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	types, err := h.svcMgr.OpTypes.List(c.Request.Context(), OrganizationID(c), category)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": types})
}

// Create handles POST /api/optypes
func (h *OperationTypeHandler) Create(c *gin.Context) {
	var opType models.OperationType
	if !BindJSON(c, &opType) {
		return
	}

	created, err := h.svcMgr.OpTypes.Create(c.Request.Context(), OrganizationID(c), &opType)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// Update handles PUT /api/optypes/:id
func (h *OperationTypeHandler) Update(c *gin.Context) {
	var opType models.OperationType
	if !BindJSON(c, &opType) {
		return
	}

	updated, err := h.svcMgr.OpTypes.Update(c.Request.Context(), OrganizationID(c), c.Param("id"), &opType)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// Delete handles DELETE /api/optypes/:id
func (h *OperationTypeHandler) Delete(c *gin.Context) {
	if err := h.svcMgr.OpTypes.Delete(c.Request.Context(), OrganizationID(c), c.Param("id")); err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "operation type deleted"})
}
