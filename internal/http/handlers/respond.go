package handlers

import (
	"net/http"

	"github.com/Shuaibullattil/daily-motivation/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// APIError is the error body. Detail is a string, or a list of FieldError for 422.
type APIError struct {
	Detail    interface{} `json:"detail"`
	Code      string      `json:"code"`
	RequestID string      `json:"requestId,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get(middlewares.CtxRequestID)

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader(middlewares.RequestIDHeader)
}

func RespondError(ctx *gin.Context, status int, code string, detail interface{}) {
	ctx.AbortWithStatusJSON(status, APIError{
		Detail:    detail,
		Code:      code,
		RequestID: requestIDFrom(ctx),
	})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, "bad_request", message)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message)
}

func RespondUnprocessable(ctx *gin.Context, fields []FieldError) {
	RespondError(ctx, http.StatusUnprocessableEntity, "validation_error", fields)
}

// RespondInternal records err on the context for the access log and hides it from the client.
func RespondInternal(ctx *gin.Context, err error) {
	if err != nil {
		_ = ctx.Error(err)
	}
	RespondError(ctx, http.StatusInternalServerError, "internal_error", "Internal Server Error")
}
