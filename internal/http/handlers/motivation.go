package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Shuaibullattil/daily-motivation/internal/domain/profile"
	"github.com/Shuaibullattil/daily-motivation/internal/motivation"
	"github.com/gin-gonic/gin"
)

type MotivationSender interface {
	Send(ctx context.Context) (motivation.Result, error)
}

type MotivationHandler struct {
	svc MotivationSender
}

func NewMotivationHandler(svc MotivationSender) *MotivationHandler {
	return &MotivationHandler{svc: svc}
}

// Motivation generates today's message and emails it. Generation problems are
// already absorbed by the fallback message; only storage and SMTP errors reach here.
func (h *MotivationHandler) Motivation(ctx *gin.Context) {
	res, err := h.svc.Send(ctx.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrNotFound):
			RespondNotFound(ctx, "User not found")
		case errors.Is(err, profile.ErrNoAbout):
			RespondBadRequest(ctx, "No about section found")
		default:
			RespondInternal(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"motivation":    res.Message,
		"email_sent_to": res.SentTo,
	})
}
