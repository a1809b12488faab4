package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"

	"Habitual/internal/habit"
	"Habitual/internal/model"
	"Habitual/internal/model/dto"
	pkgerrors "Habitual/pkg/errors"
	"Habitual/storage/database"
)

// The user_id exposed through the API is the snowflake public_id.

var (
	userService *UserService
	userOnce    sync.Once
)

func User() *UserService {
	userOnce.Do(func() {
		userService = &UserService{}
	})
	return userService
}

type UserService struct{}

// GetByPublicIDString resolves the API user identifier to a user row.
func (s *UserService) GetByPublicIDString(ctx context.Context, userID string) (*model.User, error) {
	publicID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, pkgerrors.InvalidUserID
	}

	var user model.User
	err = database.DB().WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.UserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// GetProfile returns the full profile for GET /users/me.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*dto.UserProfileData, error) {
	user, err := s.GetByPublicIDString(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profileData(user), nil
}

// UpdateSettings applies a partial settings update. Window bounds are
// validated together so a patch can never leave a malformed pair.
func (s *UserService) UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*dto.UserProfileData, error) {
	user, err := s.GetByPublicIDString(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil || *req.Timezone == "" {
			return nil, pkgerrors.InvalidTimezone
		}
		updates["timezone"] = *req.Timezone
	}
	if req.WeekStartsMonday != nil {
		updates["week_starts_monday"] = *req.WeekStartsMonday
	}
	if req.MatrixRoomID != nil {
		updates["matrix_room_id"] = *req.MatrixRoomID
	}

	start := user.NotifyWindowStart
	end := user.NotifyWindowEnd
	if req.NotifyWindowStart != nil {
		start = *req.NotifyWindowStart
	}
	if req.NotifyWindowEnd != nil {
		end = *req.NotifyWindowEnd
	}
	if req.NotifyWindowStart != nil || req.NotifyWindowEnd != nil {
		if _, err := habit.ParseWindow(start, end); err != nil {
			return nil, pkgerrors.InvalidTimeWindow
		}
		updates["notify_window_start"] = start
		updates["notify_window_end"] = end
	}

	if req.StreaksDoneEnabled != nil {
		updates["streaks_done_enabled"] = *req.StreaksDoneEnabled
	}
	if req.StreaksDoneRoomID != nil {
		updates["streaks_done_room_id"] = *req.StreaksDoneRoomID
	}

	if len(updates) > 0 {
		err = database.DB().WithContext(ctx).
			Model(&model.User{}).
			Where("id = ?", user.ID).
			Updates(updates).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update settings: %w", err)
		}
	}

	return s.GetProfile(ctx, userID)
}

func profileData(user *model.User) *dto.UserProfileData {
	return &dto.UserProfileData{
		ID:                 strconv.FormatInt(user.PublicID, 10),
		Username:           user.Username,
		Timezone:           user.Timezone,
		WeekStartsMonday:   user.WeekStartsMonday,
		MatrixRoomID:       user.MatrixRoomID,
		NotifyWindowStart:  user.NotifyWindowStart,
		NotifyWindowEnd:    user.NotifyWindowEnd,
		StreaksDoneEnabled: user.StreaksDoneEnabled,
		StreaksDoneRoomID:  user.StreaksDoneRoomID,
	}
}
