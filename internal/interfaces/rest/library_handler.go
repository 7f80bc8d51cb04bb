package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/panelops/backend/internal/application/services"
	"github.com/panelops/backend/internal/domain/models"
)

type LibraryHandler struct {
	svcMgr *services.ServiceManager
}

func NewLibraryHandler(svcMgr *services.ServiceManager) *LibraryHandler {
	return &LibraryHandler{svcMgr: svcMgr}
}

// List handles GET /api/library/:category
func (h *LibraryHandler) List(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	entries, err := h.svcMgr.Library.List(c.Request.Context(), OrganizationID(c), category)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// Create handles POST /api/library/:category
func (h *LibraryHandler) Create(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	var entry models.LibraryEntry
	if !BindJSON(c, &entry) {
		return
	}
	entry.Category = category

	created, err := h.svcMgr.Library.Create(c.Request.Context(), OrganizationID(c), &entry)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// Update handles PUT /api/library/:category/:id
func (h *LibraryHandler) Update(c *gin.Context) {
	if _, ok := categoryParam(c); !ok {
		return
	}

	var entry models.LibraryEntry
	if !BindJSON(c, &entry) {
		return
	}

	updated, err := h.svcMgr.Library.Update(c.Request.Context(), OrganizationID(c), c.Param("id"), &entry)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// Delete handles DELETE /api/library/:category/:id
func (h *LibraryHandler) Delete(c *gin.Context) {
	if _, ok := categoryParam(c); !ok {
		return
	}

	if err := h.svcMgr.Library.Delete(c.Request.Context(), OrganizationID(c), c.Param("id")); err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "library entry deleted"})
}

// IncrementUsage handles POST /api/library/:category/:id/usage
func (h *LibraryHandler) IncrementUsage(c *gin.Context) {
	if _, ok := categoryParam(c); !ok {
		return
	}

	if err := h.svcMgr.Library.IncrementUsage(c.Request.Context(), c.Param("id")); err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "usage counted"})
}
