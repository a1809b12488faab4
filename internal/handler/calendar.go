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

// CreateCalendar starts tracking a habit
// POST /v1/calendars
func CreateCalendar(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.CreateCalendarRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Calendar().Create(ctx, userID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, data)
}

// ListCalendars lists the user's habits
// GET /v1/calendars
func ListCalendars(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	data, err := service.Calendar().List(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, data)
}

// GetCalendar returns one habit
// GET /v1/calendars/:calendar_id
func GetCalendar(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	data, err := service.Calendar().Get(ctx, userID, c.Param("calendar_id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, data)
}

// UpdateCalendar patches one habit
// PATCH /v1/calendars/:calendar_id
func UpdateCalendar(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.UpdateCalendarRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Calendar().Update(ctx, userID, c.Param("calendar_id"), req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, data)
}

// DeleteCalendar removes one habit
// DELETE /v1/calendars/:calendar_id
func DeleteCalendar(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	if err := service.Calendar().Delete(ctx, userID, c.Param("calendar_id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.NoContent(ctx, c)
}

// MarkDay sets the status of one day
// PUT /v1/calendars/:calendar_id/days/:date
func MarkDay(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.MarkDayRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Calendar().MarkDay(ctx, userID, c.Param("calendar_id"), c.Param("date"), req.Status)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, data)
}

// ListDays lists recorded days, optionally bounded by ?from&to
// GET /v1/calendars/:calendar_id/days
func ListDays(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	rng := dto.DayRangeQuery{
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	data, err := service.Calendar().ListDays(ctx, userID, c.Param("calendar_id"), rng)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, data)
}

// GetStreak returns the current streak
// GET /v1/calendars/:calendar_id/streak
func GetStreak(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	data, err := service.Calendar().GetStreak(ctx, userID, c.Param("calendar_id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, data)
}
