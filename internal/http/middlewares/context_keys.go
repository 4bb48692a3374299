package middlewares

const (
	CtxRequestID = "request_id"

	RequestIDHeader = "X-Request-Id"
)
