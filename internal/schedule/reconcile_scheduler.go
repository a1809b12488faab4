package schedule

// Daily reconciliation: fill breakday entries for off-agenda days and
// reset the per-user all-done flags for the new day.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Habitual/internal/cache"
	"Habitual/internal/habit"
	"Habitual/internal/model"
	"Habitual/pkg/logger"
	"Habitual/storage/database"
	"Habitual/utils"
)

var (
	reconcileOnce sync.Once
	reconcileInst *ReconcileScheduler
)

type ReconcileScheduler struct {
	logger      *zap.Logger
	running     bool
	runningMu   sync.Mutex
	lastRunTime time.Time
}

func GetReconcileScheduler() *ReconcileScheduler {
	reconcileOnce.Do(func() {
		reconcileInst = &ReconcileScheduler{
			logger: logger.Logger,
		}
	})
	return reconcileInst
}

// Run performs one reconciliation pass. The pass is idempotent, so
// re-running it within the same day only re-verifies existing entries;
// the once-per-day flag reset is claimed separately through redis.
func (s *ReconcileScheduler) Run(ctx context.Context) error {
	s.runningMu.Lock()
	if s.running {
		s.runningMu.Unlock()
		s.logger.Info("Reconciliation already running, skipping")
		return nil
	}
	s.running = true
	s.runningMu.Unlock()

	defer func() {
		s.runningMu.Lock()
		s.running = false
		s.runningMu.Unlock()
	}()

	// Guards against a second scheduler instance, not against re-runs.
	locked, err := cache.TryLock(ctx, "reconcile", 10*time.Minute)
	if err != nil {
		s.logger.Warn("Failed to acquire reconcile lock, proceeding anyway", zap.Error(err))
	} else if !locked {
		s.logger.Info("Another instance holds the reconcile lock, skipping")
		return nil
	} else {
		defer func() {
			if err := cache.Unlock(ctx, "reconcile"); err != nil {
				s.logger.Warn("Failed to release reconcile lock", zap.Error(err))
			}
		}()
	}

	// One reading of the clock for the whole run, so a pass straddling
	// midnight stays on a single date.
	now := time.Now()
	s.lastRunTime = now

	s.logger.Info("Starting daily reconciliation", zap.Time("start_time", now))

	if err := s.resetSentTodayFlags(ctx, now); err != nil {
		s.logger.Error("Failed to reset all-done flags", zap.Error(err))
		// Breakday filling still proceeds; the flag reset retries on
		// the next pass because the date claim was released.
	}

	var users []model.User
	if err := database.DB().WithContext(ctx).Find(&users).Error; err != nil {
		return fmt.Errorf("failed to query users: %w", err)
	}

	swept, failed := 0, 0
	for i := range users {
		user := &users[i]
		userNow := now.In(utils.UserLocation(user.Timezone))
		today := utils.DateOnly(userNow)

		var calendars []model.Calendar
		err := database.DB().WithContext(ctx).
			Where("user_id = ?", user.ID).
			Find(&calendars).Error
		if err != nil {
			failed++
			s.logger.Warn("Failed to load calendars for user, skipping",
				zap.Int64("user_id", user.PublicID),
				zap.Error(err),
			)
			continue
		}

		for j := range calendars {
			if err := s.reconcileCalendar(ctx, &calendars[j], today, userNow.Weekday()); err != nil {
				failed++
				s.logger.Warn("Failed to reconcile calendar, skipping",
					zap.Int64("calendar_id", calendars[j].PublicID),
					zap.Error(err),
				)
				continue
			}
			swept++
		}
	}

	s.logger.Info("Daily reconciliation finished",
		zap.Int("calendars_swept", swept),
		zap.Int("calendars_failed", failed),
		zap.Duration("elapsed", time.Since(now)),
	)

	return nil
}

// reconcileCalendar fills today's breakday for one calendar when the
// agenda does not expect the day. An existing success is never touched.
func (s *ReconcileScheduler) reconcileCalendar(ctx context.Context, cal *model.Calendar, today time.Time, weekday time.Weekday) error {
	var existing model.CalendarDay
	err := database.DB().WithContext(ctx).
		Where("calendar_id = ? AND date = ?", cal.ID, today).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to query day: %w", err)
	}
	recorded := err == nil

	if !habit.NeedsBreakday(cal.Agenda, weekday, existing.Status, recorded) {
		return nil
	}

	if !recorded {
		day := model.CalendarDay{
			CalendarID: cal.ID,
			Date:       today,
			Status:     model.DayStatusBreakday,
		}
		return database.DB().WithContext(ctx).Create(&day).Error
	}

	// Overwrite a recorded non-success status on an off day. The WHERE
	// re-checks the status so a concurrent success mark wins.
	return database.DB().WithContext(ctx).
		Model(&model.CalendarDay{}).
		Where("id = ? AND status <> ?", existing.ID, model.DayStatusSuccess).
		Update("status", model.DayStatusBreakday).Error
}

// resetSentTodayFlags clears every user's all-done flag once per date.
func (s *ReconcileScheduler) resetSentTodayFlags(ctx context.Context, now time.Time) error {
	date := now.Format(utils.DateLayout)

	claimed, err := cache.TryMarkReconcileRun(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to claim daily flag reset: %w", err)
	}
	if !claimed {
		return nil
	}

	err = database.DB().WithContext(ctx).
		Model(&model.User{}).
		Where("streaks_done_sent_today = ?", true).
		Update("streaks_done_sent_today", false).Error
	if err != nil {
		// Release the claim so the next pass can retry the reset.
		if unmarkErr := cache.UnmarkReconcileRun(ctx, date); unmarkErr != nil {
			s.logger.Warn("Failed to release flag reset claim", zap.Error(unmarkErr))
		}
		return fmt.Errorf("failed to reset flags: %w", err)
	}

	s.logger.Info("Daily all-done flags reset", zap.String("date", date))
	return nil
}
