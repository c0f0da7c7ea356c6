package values

const (
	Success        = "success"
	Created        = "created"
	Error          = "error"
	NotFound       = "not-found"
	Conflict       = "conflict"
	NotAllowed     = "not-allowed"
	NotAuthorised  = "not-authorised"
	BadRequestBody = "bad-request-body"
	Unprocessable  = "unprocessable"
	TokenExpired   = "token-expired"
	ActiveLogin    = "active-login"
	SystemErr      = "Something went wrong"
)

const (
	HeaderRequestSource = "X-Request-Source"
	HeaderRequestID     = "X-Request-Id"
)

type contextKey string

const (
	ContextTracingKey  = contextKey("tracing-context")
	ContextUserIDKey   = contextKey("user_id")
	ContextUsernameKey = contextKey("username")
	ContextIsAdminKey  = contextKey("is_admin")
)
