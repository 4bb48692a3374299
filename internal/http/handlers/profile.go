package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Shuaibullattil/daily-motivation/internal/domain/profile"
	"github.com/gin-gonic/gin"
)

type ProfileStore interface {
	Create(ctx context.Context, p profile.Profile) (profile.Profile, error)
	Get(ctx context.Context) (profile.Profile, error)
	Update(ctx context.Context, patch profile.Patch) (profile.Profile, error)
}

type ProfileHandler struct {
	repo ProfileStore
}

func NewProfileHandler(repo ProfileStore) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

// CreateUser replaces whatever profile is stored.
func (h *ProfileHandler) CreateUser(ctx *gin.Context) {
	var req profile.CreateProfileRequest

	if !BindJSON(ctx, &req) {
		return
	}

	p, err := h.repo.Create(ctx.Request.Context(), req.Profile())
	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User data saved successfully",
		"data":    p,
	})
}

func (h *ProfileHandler) GetUser(ctx *gin.Context) {
	p, err := h.repo.Get(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{"data": p})
}

func (h *ProfileHandler) UpdateUser(ctx *gin.Context) {
	var req profile.UpdateProfileRequest

	if !BindJSON(ctx, &req) {
		return
	}

	p, err := h.repo.Update(ctx.Request.Context(), req.Patch())
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User data updated successfully",
		"data":    p,
	})
}
