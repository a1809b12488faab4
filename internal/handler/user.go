package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"Habitual/internal/middleware"
	"Habitual/internal/model/dto"
	"Habitual/internal/service"
	"Habitual/pkg/errors"
	"Habitual/pkg/response"
)

// GetUserProfile returns the authenticated user's profile
// GET /v1/users/me
func GetUserProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	data, err := service.User().GetProfile(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, data)
}

// UpdateUserSettings patches the authenticated user's settings
// PUT /v1/users/me/settings
func UpdateUserSettings(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.User().UpdateSettings(ctx, userID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, data)
}
