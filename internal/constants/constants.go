package constants

const (
	// ContextKeyUserID is the session and gin context key holding the authenticated user ID
	ContextKeyUserID = "user_id"

	// SessionCookieName is the name of the session cookie
	SessionCookieName = "workforce_session"

	// ContextKeyRequestID is the gin context key holding the request ID
	ContextKeyRequestID = "request_id"

	// HeaderRequestID is the response header echoing the request ID
	HeaderRequestID = "X-Request-ID"

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// DateLayout is the format of week/day query parameters
	DateLayout = "2006-01-02"
)
