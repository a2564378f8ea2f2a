package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HenryFerreira/bedelias-backend/internal/pkg/apperrors"
)

// currentUserID reads the authenticated user's id from the context.
// Auth middleware sets it, so a missing value means the route was
// wired without authentication.
func currentUserID(ctx *gin.Context) (int64, error) {
	value, exists := ctx.Get("userID")
	if !exists {
		return 0, apperrors.ErrPermissionDenied
	}

	userID, ok := value.(int64)
	if !ok {
		return 0, apperrors.ErrPermissionDenied
	}
	return userID, nil
}

// pathID parses an int64 path parameter.
func pathID(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError(name + " must be a positive number")
	}
	return id, nil
}
