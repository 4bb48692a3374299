package middlewares

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request bodies. A declared Content-Length over the cap is
// rejected before the handler runs; chunked bodies fail on read.
func MaxBodyBytes(max int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if max <= 0 || ctx.Request.Body == nil {
			ctx.Next()
			return
		}

		if ctx.Request.ContentLength > max {
			abortWithDetail(ctx, http.StatusRequestEntityTooLarge, "request_too_large", "Request body too large")
			return
		}

		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, max)
		ctx.Next()
	}
}

// RequireJSON rejects POST and PUT bodies not declared as application/json.
func RequireJSON() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		switch ctx.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			mt, _, err := mime.ParseMediaType(ctx.GetHeader("Content-Type"))
			if err != nil || mt != "application/json" {
				abortWithDetail(ctx, http.StatusUnsupportedMediaType, "unsupported_media_type", "Content-Type must be application/json")
				return
			}
		}
		ctx.Next()
	}
}

// same body shape as handlers.APIError; handlers imports this package.
func abortWithDetail(ctx *gin.Context, status int, code, detail string) {
	body := gin.H{"detail": detail, "code": code}
	if id, ok := ctx.Get(CtxRequestID); ok {
		body["requestId"] = id
	}
	ctx.AbortWithStatusJSON(status, body)
}
