package controller

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/hjakub/drive-backend/internal/errors"
	"github.com/hjakub/drive-backend/internal/middleware"
)

// AuthController stubs the authentication surface. Accounts are not
// part of this service; callers get a structured 501 instead of a
// missing route so clients can distinguish "not here yet" from
// "wrong URL".
type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// NotImplemented answers every auth endpoint
// POST /api/auth/register, /api/auth/login, /api/auth/logout
func (ctrl *AuthController) NotImplemented(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	log.Warn("Auth endpoint called but not implemented", map[string]interface{}{
		"path": c.Request.URL.Path,
	})

	apperrors.NotImplemented(c, apperrors.AuthNotImplemented, "Auth not available")
}
