package rest

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/panelops/backend/pkg/auth"
	"github.com/panelops/backend/pkg/constants"
	"github.com/panelops/backend/pkg/errors"
)

// SessionFromContext extracts the authenticated session set by the auth
// middleware, or nil on unauthenticated routes
func SessionFromContext(c *gin.Context) *auth.Session {
	sessionInterface, exists := c.Get(constants.ContextKeyAccount)
	if !exists {
		return nil
	}
	session := sessionInterface.(auth.Session)
	return &session
}

// OrganizationID returns the caller's organization id from the session
func OrganizationID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyOrgID)
}

// RespondAppError sends a standardised JSON error response using pkg/errors
func RespondAppError(c *gin.Context, err error) {
	code := errors.GetHTTPStatus(err)
	errorCode := errors.GetErrorCode(err)
	message := err.Error()

	if code >= 500 {
		log.Printf("❌ ERROR [%d] %s %s: %s", code, c.Request.Method, c.Request.URL.Path, message)
	}

	c.JSON(code, gin.H{
		"error":   message,
		"message": message,
		"code":    errorCode,
		"data":    nil,
	})
}

// BindJSON binds JSON and returns true if successful. If failed, it sends
// a bad request error.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondAppError(c, errors.NewValidationError("body", err.Error()))
		return false
	}
	return true
}

// categoryParam reads and validates the :category path parameter. On
// failure it responds 400 and returns false.
func categoryParam(c *gin.Context) (constants.OperationCategory, bool) {
	raw := c.Param("category")
	if !constants.IsValidCategory(raw) {
		RespondAppError(c, errors.NewValidationError("category", "unknown category '"+raw+"'"))
		return "", false
	}
	return constants.OperationCategory(raw), true
}
