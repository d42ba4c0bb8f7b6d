// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/jobly/internal/pkg/apperrors"
)

// Controllers never write error bodies: they record the error with ctx.Error
// and return, and middleware.ErrorHandler renders it.

// int64Param parses a numeric path parameter. Ids are SERIAL columns, so
// values outside the int32 range are rejected before reaching the database.
func int64Param(ctx *gin.Context, name string) (int64, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseInt(raw, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("%s is out of range, got %q", name, raw))
	}
	if err != nil {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("%s must be an integer, got %q", name, raw))
	}
	return id, nil
}

func fail(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
}
