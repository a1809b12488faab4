package schedule

// Per-minute decision sweep: evaluate every user's calendars against
// the current time and publish the decided notifications as one batch.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"Habitual/internal/habit"
	"Habitual/internal/model"
	"Habitual/internal/queue"
	"Habitual/pkg/logger"
	"Habitual/pkg/snowflake"
	"Habitual/storage/database"
	"Habitual/utils"
)

var (
	notifyOnce sync.Once
	notifyInst *NotifyScheduler
)

type NotifyScheduler struct {
	logger      *zap.Logger
	running     bool
	runningMu   sync.Mutex
	lastRunTime time.Time
}

func GetNotifyScheduler() *NotifyScheduler {
	notifyOnce.Do(func() {
		notifyInst = &NotifyScheduler{
			logger: logger.Logger,
		}
	})
	return notifyInst
}

// Run performs one decision sweep. Flag transitions are persisted as
// they are decided, before and independent of dispatch; the decided
// sends of the whole sweep go out as a single queue message.
func (s *NotifyScheduler) Run(ctx context.Context) error {
	s.runningMu.Lock()
	if s.running {
		s.runningMu.Unlock()
		s.logger.Info("Notify sweep already running, skipping")
		return nil
	}
	s.running = true
	s.runningMu.Unlock()

	defer func() {
		s.runningMu.Lock()
		s.running = false
		s.runningMu.Unlock()
	}()

	now := time.Now()
	s.lastRunTime = now

	var users []model.User
	if err := database.DB().WithContext(ctx).Find(&users).Error; err != nil {
		return fmt.Errorf("failed to query users: %w", err)
	}

	var sends []model.NotificationSend
	evaluated, failed := 0, 0
	for i := range users {
		userSends, err := s.evaluateUser(ctx, &users[i], now)
		if err != nil {
			failed++
			s.logger.Warn("Failed to evaluate user, skipping",
				zap.Int64("user_id", users[i].PublicID),
				zap.Error(err),
			)
			continue
		}
		evaluated++
		sends = append(sends, userSends...)
	}

	if len(sends) == 0 {
		return nil
	}

	batchID, err := snowflake.NextID()
	if err != nil {
		return fmt.Errorf("failed to generate batch ID: %w", err)
	}

	msg := model.NotificationBatchMessage{
		BatchID:     fmt.Sprintf("sweep_%d", batchID),
		ScheduledAt: now.UTC().Format(time.RFC3339),
		Sends:       sends,
	}
	if err := queue.PublishNotificationBatch(msg); err != nil {
		return fmt.Errorf("failed to publish sweep batch: %w", err)
	}

	s.logger.Info("Notify sweep finished",
		zap.Int("users_evaluated", evaluated),
		zap.Int("users_failed", failed),
		zap.Int("send_count", len(sends)),
		zap.Duration("elapsed", time.Since(now)),
	)

	return nil
}

// evaluateUser runs the decision engine for one user and persists any
// all-done flag transition.
func (s *NotifyScheduler) evaluateUser(ctx context.Context, user *model.User, now time.Time) ([]model.NotificationSend, error) {
	var calendars []model.Calendar
	err := database.DB().WithContext(ctx).
		Where("user_id = ?", user.ID).
		Find(&calendars).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load calendars: %w", err)
	}
	if len(calendars) == 0 {
		return nil, nil
	}

	window, err := habit.ParseWindow(user.NotifyWindowStart, user.NotifyWindowEnd)
	if err != nil {
		// A malformed stored window falls back to always-open rather
		// than silencing the user.
		s.logger.Warn("Malformed notify window, treating as open",
			zap.Int64("user_id", user.PublicID),
			zap.String("start", user.NotifyWindowStart),
			zap.String("end", user.NotifyWindowEnd),
		)
		window, _ = habit.ParseWindow("", "")
	}

	states := make([]habit.CalendarState, 0, len(calendars))
	for i := range calendars {
		cal := &calendars[i]
		days, err := s.loadDays(ctx, cal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load days for calendar %d: %w", cal.PublicID, err)
		}
		states = append(states, habit.CalendarState{
			ID:               cal.PublicID,
			Name:             cal.Name,
			Agenda:           cal.Agenda,
			RemindersEnabled: cal.RemindersEnabled,
			Days:             days,
		})
	}

	userNow := now.In(utils.UserLocation(user.Timezone))
	decision := habit.Evaluate(habit.UserState{
		ID:                   user.PublicID,
		RoomID:               user.MatrixRoomID,
		CongratRoomID:        user.CongratRoomID(),
		Window:               window,
		StreaksDoneEnabled:   user.StreaksDoneEnabled,
		StreaksDoneSentToday: user.StreaksDoneSentToday,
	}, states, userNow)

	// The flag tracks calendar state, not delivery; persist it before
	// anything is enqueued.
	if decision.SentTodayChanged {
		err := database.DB().WithContext(ctx).
			Model(&model.User{}).
			Where("id = ?", user.ID).
			Update("streaks_done_sent_today", decision.SentToday).Error
		if err != nil {
			return nil, fmt.Errorf("failed to persist all-done flag: %w", err)
		}
	}

	sends := make([]model.NotificationSend, 0, len(decision.Sends))
	for _, send := range decision.Sends {
		sends = append(sends, model.NotificationSend{
			RoomID:     send.RoomID,
			Body:       send.Body,
			Kind:       send.Kind,
			UserID:     user.PublicID,
			CalendarID: send.CalendarID,
		})
	}
	return sends, nil
}

func (s *NotifyScheduler) loadDays(ctx context.Context, calendarRowID int64) (habit.DaySet, error) {
	var days []model.CalendarDay
	err := database.DB().WithContext(ctx).
		Where("calendar_id = ?", calendarRowID).
		Find(&days).Error
	if err != nil {
		return nil, err
	}

	view := make(habit.DaySet, len(days))
	for _, d := range days {
		view[d.Date.Format(utils.DateLayout)] = d.Status
	}
	return view, nil
}
