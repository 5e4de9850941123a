package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/workforce-api/internal/constants"
	apierrors "github.com/yukikurage/workforce-api/internal/errors"
	"github.com/yukikurage/workforce-api/internal/middleware"
	"github.com/yukikurage/workforce-api/internal/services"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

// Clock returns the instant a request is evaluated at.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// respondError maps service errors to API errors. Configuration and store failures are logged
// and reported without detail.
func respondError(c *gin.Context, logger zerolog.Logger, err error) {
	if denial, ok := workforce.AsDenial(err); ok {
		apierrors.Denied(c, denial)
		return
	}

	var (
		validationErr *workforce.ValidationError
		cfgErr        *workforce.ConfigurationError
		storeErr      *workforce.StoreError
	)
	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, validationErr.Error(), gin.H{"field": validationErr.Field})
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrOrganizationNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrShiftNotFound),
		errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrExceptionNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotEntryOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyReviewed):
		apierrors.Conflict(c, err.Error())
	case errors.As(err, &cfgErr):
		logger.Error().Err(err).
			Str("request_id", middleware.RequestID(c)).
			Str("field", cfgErr.Field).
			Msg("rejected malformed configuration")
		apierrors.ActionUnavailable(c, http.StatusInternalServerError)
	case errors.As(err, &storeErr):
		logger.Error().Err(storeErr.Err).
			Str("request_id", middleware.RequestID(c)).
			Str("op", storeErr.Op).
			Msg("store failure")
		apierrors.ActionUnavailable(c, http.StatusServiceUnavailable)
	default:
		logger.Error().Err(err).Str("request_id", middleware.RequestID(c)).Msg("unhandled error")
		apierrors.InternalError(c, "")
	}
}

func currentUserID(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
	}
	return userID, exists
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// bindOptionalJSON binds a JSON body that may be absent. It responds with 400 and returns false
// when a body is present but invalid.
func bindOptionalJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// parseWeek reads a YYYY-MM-DD query parameter naming any day of a week. Without it the week
// is the one containing now in the organization's timezone.
func parseWeek(c *gin.Context, name string, now time.Time) (services.Week, bool) {
	raw := c.Query(name)
	if raw == "" {
		return services.WeekAt(now), true
	}
	day, err := time.ParseInLocation(constants.DateLayout, raw, time.UTC)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name+", expected YYYY-MM-DD")
		return services.Week{}, false
	}
	return services.WeekOfDate(day), true
}
