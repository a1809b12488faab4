package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Habitual/internal/cache"
	"Habitual/internal/habit"
	"Habitual/internal/model"
	"Habitual/internal/model/dto"
	"Habitual/internal/queue"
	pkgerrors "Habitual/pkg/errors"
	"Habitual/pkg/logger"
	"Habitual/pkg/snowflake"
	"Habitual/storage/database"
	"Habitual/utils"
)

var (
	calendarService *CalendarService
	calendarOnce    sync.Once
)

func Calendar() *CalendarService {
	calendarOnce.Do(func() {
		calendarService = &CalendarService{}
	})
	return calendarService
}

type CalendarService struct{}

// Create starts tracking a new habit for the user.
func (s *CalendarService) Create(ctx context.Context, userID string, req dto.CreateCalendarRequest) (*dto.CalendarData, error) {
	user, err := User().GetByPublicIDString(ctx, userID)
	if err != nil {
		return nil, err
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate calendar ID: %w", err)
	}

	cal := model.Calendar{
		PublicID:         publicID,
		UserID:           user.ID,
		Name:             req.Name,
		Agenda:           model.Agenda(req.Agenda),
		RemindersEnabled: true,
	}
	if req.RemindersEnabled != nil {
		cal.RemindersEnabled = *req.RemindersEnabled
	}
	if req.CongratsEnabled != nil {
		cal.CongratsEnabled = *req.CongratsEnabled
	}

	if err := database.DB().WithContext(ctx).Create(&cal).Error; err != nil {
		return nil, fmt.Errorf("failed to create calendar: %w", err)
	}

	logger.Logger.Info("Calendar created",
		zap.Int64("calendar_id", cal.PublicID),
		zap.Int64("user_id", user.PublicID),
		zap.String("name", cal.Name),
	)

	return calendarData(&cal), nil
}

// List returns every habit of the user, oldest first.
func (s *CalendarService) List(ctx context.Context, userID string) ([]dto.CalendarData, error) {
	user, err := User().GetByPublicIDString(ctx, userID)
	if err != nil {
		return nil, err
	}

	var calendars []model.Calendar
	err = database.DB().WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("id").
		Find(&calendars).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	result := make([]dto.CalendarData, 0, len(calendars))
	for i := range calendars {
		result = append(result, *calendarData(&calendars[i]))
	}
	return result, nil
}

// Get returns one habit owned by the user.
func (s *CalendarService) Get(ctx context.Context, userID, calendarID string) (*dto.CalendarData, error) {
	_, cal, err := s.ownedCalendar(ctx, userID, calendarID)
	if err != nil {
		return nil, err
	}
	return calendarData(cal), nil
}

// Update patches a habit. Nil request fields stay unchanged.
func (s *CalendarService) Update(ctx context.Context, userID, calendarID string, req dto.UpdateCalendarRequest) (*dto.CalendarData, error) {
	_, cal, err := s.ownedCalendar(ctx, userID, calendarID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Agenda != nil {
		updates["agenda"] = model.Agenda(*req.Agenda)
	}
	if req.RemindersEnabled != nil {
		updates["reminders_enabled"] = *req.RemindersEnabled
	}
	if req.CongratsEnabled != nil {
		updates["congrats_enabled"] = *req.CongratsEnabled
	}

	if len(updates) > 0 {
		err = database.DB().WithContext(ctx).
			Model(&model.Calendar{}).
			Where("id = ?", cal.ID).
			Updates(updates).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update calendar: %w", err)
		}
	}

	return s.Get(ctx, userID, calendarID)
}

// Delete soft-deletes a habit and its recorded days.
func (s *CalendarService) Delete(ctx context.Context, userID, calendarID string) error {
	_, cal, err := s.ownedCalendar(ctx, userID, calendarID)
	if err != nil {
		return err
	}

	return database.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("calendar_id = ?", cal.ID).Delete(&model.CalendarDay{}).Error; err != nil {
			return fmt.Errorf("failed to delete calendar days: %w", err)
		}
		if err := tx.Delete(&model.Calendar{}, cal.ID).Error; err != nil {
			return fmt.Errorf("failed to delete calendar: %w", err)
		}
		return nil
	})
}

// MarkDay records the status of one day. A first transition to success
// on today's date fires the per-habit congratulation immediately, at
// most once per habit per day.
func (s *CalendarService) MarkDay(ctx context.Context, userID, calendarID, dateStr, statusStr string) (*dto.DayData, error) {
	user, cal, err := s.ownedCalendar(ctx, userID, calendarID)
	if err != nil {
		return nil, err
	}

	status := model.DayStatus(statusStr)
	if !model.ValidDayStatus(status) {
		return nil, pkgerrors.InvalidDayStatus
	}

	loc := utils.UserLocation(user.Timezone)
	date, err := utils.ParseDate(dateStr, loc)
	if err != nil {
		return nil, pkgerrors.InvalidDate
	}

	var prev model.CalendarDay
	prevErr := database.DB().WithContext(ctx).
		Where("calendar_id = ? AND date = ?", cal.ID, date).
		First(&prev).Error
	if prevErr != nil && !errors.Is(prevErr, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query day: %w", prevErr)
	}
	alreadySuccess := prevErr == nil && prev.Status == model.DayStatusSuccess

	day := model.CalendarDay{
		CalendarID: cal.ID,
		Date:       date,
		Status:     status,
	}
	err = database.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "calendar_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&day).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert day: %w", err)
	}

	// Event-triggered congratulation, separate from the sweep paths.
	today := utils.DateOnly(time.Now().In(loc))
	if status == model.DayStatusSuccess && !alreadySuccess &&
		date.Equal(today) && cal.CongratsEnabled {
		s.publishCongrat(ctx, user, cal, dateStr, today)
	}

	return &dto.DayData{Date: dateStr, Status: string(status)}, nil
}

// publishCongrat enqueues the single-habit completion message. Failures
// are logged only; marking a day never fails because of notifications.
func (s *CalendarService) publishCongrat(ctx context.Context, user *model.User, cal *model.Calendar, dateStr string, today time.Time) {
	if user.MatrixRoomID == "" {
		return
	}

	claimed, err := cache.TryMarkCongratSent(ctx, cal.ID, dateStr)
	if err != nil {
		logger.Logger.Warn("Failed to claim congrat mark",
			zap.Int64("calendar_id", cal.PublicID),
			zap.Error(err),
		)
		return
	}
	if !claimed {
		return
	}

	days, err := s.loadDays(ctx, cal.ID)
	if err != nil {
		logger.Logger.Warn("Failed to load days for congrat",
			zap.Int64("calendar_id", cal.PublicID),
			zap.Error(err),
		)
		return
	}
	streak := habit.CountStreak(days, cal.Agenda, today)

	batchID := fmt.Sprintf("congrat_%d_%s", cal.PublicID, dateStr)
	msg := model.NotificationBatchMessage{
		BatchID:     batchID,
		ScheduledAt: time.Now().UTC().Format(time.RFC3339),
		Sends: []model.NotificationSend{{
			RoomID:     user.MatrixRoomID,
			Body:       habit.CongratMessage(cal.Name, streak),
			Kind:       model.NotifyKindCongrat,
			UserID:     user.PublicID,
			CalendarID: cal.PublicID,
		}},
	}
	if err := queue.PublishNotificationBatch(msg); err != nil {
		logger.Logger.Warn("Failed to publish congrat batch",
			zap.String("batch_id", batchID),
			zap.Error(err),
		)
	}
}

// ListDays returns recorded days, optionally bounded by from/to.
func (s *CalendarService) ListDays(ctx context.Context, userID, calendarID string, rng dto.DayRangeQuery) ([]dto.DayData, error) {
	user, cal, err := s.ownedCalendar(ctx, userID, calendarID)
	if err != nil {
		return nil, err
	}
	loc := utils.UserLocation(user.Timezone)

	q := database.DB().WithContext(ctx).
		Where("calendar_id = ?", cal.ID)
	if rng.From != "" {
		from, err := utils.ParseDate(rng.From, loc)
		if err != nil {
			return nil, pkgerrors.InvalidDate
		}
		q = q.Where("date >= ?", from)
	}
	if rng.To != "" {
		to, err := utils.ParseDate(rng.To, loc)
		if err != nil {
			return nil, pkgerrors.InvalidDate
		}
		q = q.Where("date <= ?", to)
	}

	var days []model.CalendarDay
	if err := q.Order("date").Find(&days).Error; err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}

	result := make([]dto.DayData, 0, len(days))
	for _, d := range days {
		result = append(result, dto.DayData{
			Date:   d.Date.Format(utils.DateLayout),
			Status: string(d.Status),
		})
	}
	return result, nil
}

// GetStreak computes the current streak as of the user's local today.
func (s *CalendarService) GetStreak(ctx context.Context, userID, calendarID string) (*dto.StreakData, error) {
	user, cal, err := s.ownedCalendar(ctx, userID, calendarID)
	if err != nil {
		return nil, err
	}

	days, err := s.loadDays(ctx, cal.ID)
	if err != nil {
		return nil, err
	}

	today := utils.DateOnly(time.Now().In(utils.UserLocation(user.Timezone)))
	return &dto.StreakData{
		CalendarID: strconv.FormatInt(cal.PublicID, 10),
		Streak:     habit.CountStreak(days, cal.Agenda, today),
		AsOf:       today.Format(utils.DateLayout),
	}, nil
}

// loadDays builds the date-to-status view the streak walk consumes.
func (s *CalendarService) loadDays(ctx context.Context, calendarRowID int64) (habit.DaySet, error) {
	var days []model.CalendarDay
	err := database.DB().WithContext(ctx).
		Where("calendar_id = ?", calendarRowID).
		Find(&days).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load days: %w", err)
	}

	view := make(habit.DaySet, len(days))
	for _, d := range days {
		view[d.Date.Format(utils.DateLayout)] = d.Status
	}
	return view, nil
}

// ownedCalendar resolves a calendar public ID and enforces ownership.
// A calendar of another user is reported as not found, not forbidden.
func (s *CalendarService) ownedCalendar(ctx context.Context, userID, calendarID string) (*model.User, *model.Calendar, error) {
	user, err := User().GetByPublicIDString(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	publicID, err := strconv.ParseInt(calendarID, 10, 64)
	if err != nil {
		return nil, nil, pkgerrors.CalendarNotFound
	}

	var cal model.Calendar
	err = database.DB().WithContext(ctx).
		Where("public_id = ? AND user_id = ?", publicID, user.ID).
		First(&cal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.CalendarNotFound
		}
		return nil, nil, fmt.Errorf("failed to query calendar: %w", err)
	}

	return user, &cal, nil
}

func calendarData(cal *model.Calendar) *dto.CalendarData {
	return &dto.CalendarData{
		ID:               strconv.FormatInt(cal.PublicID, 10),
		Name:             cal.Name,
		Agenda:           [7]bool(cal.Agenda),
		RemindersEnabled: cal.RemindersEnabled,
		CongratsEnabled:  cal.CongratsEnabled,
		CreatedAt:        cal.CreatedAt.UTC().Format(time.RFC3339),
	}
}
