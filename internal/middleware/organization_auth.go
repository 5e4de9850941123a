package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	apierrors "github.com/yukikurage/workforce-api/internal/errors"
	"github.com/yukikurage/workforce-api/internal/services"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

// RequireCapability checks that the current user's hierarchy level grants capability
// in their organization
func RequireCapability(perms *services.PermissionService, capability workforce.Capability, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		_, _, err := perms.Authorize(c.Request.Context(), userID, capability)
		if err == nil {
			c.Next()
			return
		}

		if denial, ok := workforce.AsDenial(err); ok {
			apierrors.Denied(c, denial)
		} else if errors.Is(err, services.ErrUserNotFound) {
			apierrors.Unauthorized(c, "")
		} else {
			logger.Error().Err(err).Str("capability", string(capability)).Msg("capability check failed")
			apierrors.ActionUnavailable(c, http.StatusServiceUnavailable)
		}
		c.Abort()
	}
}
