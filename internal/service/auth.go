package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Habitual/config"
	"Habitual/internal/model"
	"Habitual/internal/model/dto"
	pkgerrors "Habitual/pkg/errors"
	"Habitual/pkg/logger"
	"Habitual/pkg/snowflake"
	"Habitual/pkg/token"
	"Habitual/storage/database"
	"Habitual/utils"
)

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = &AuthService{}
	})
	return authService
}

type AuthService struct{}

// Register creates an account and signs the user in.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var existing model.User
	err := database.DB().WithContext(ctx).
		Where("username = ?", req.Username).
		First(&existing).Error
	if err == nil {
		return nil, pkgerrors.UsernameAlreadyTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	user := model.User{
		PublicID:          publicID,
		Username:          req.Username,
		PasswordHash:      utils.HashPassword(req.Password),
		Timezone:          "UTC",
		WeekStartsMonday:  true,
		NotifyWindowStart: config.Cfg.DefaultNotifyWindowStart,
		NotifyWindowEnd:   config.Cfg.DefaultNotifyWindowEnd,
	}
	if err := database.DB().WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Logger.Info("User registered",
		zap.Int64("public_id", user.PublicID),
		zap.String("username", user.Username),
	)

	return s.buildAuthResponse(&user)
}

// Login exchanges credentials for a token pair.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	var user model.User
	err := database.DB().WithContext(ctx).
		Where("username = ?", req.Username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.InvalidCredentials
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, pkgerrors.InvalidCredentials
	}

	return s.buildAuthResponse(&user)
}

// RefreshToken rotates a token pair given a valid refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error) {
	userID, err := token.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}

	publicID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}

	// The user must still exist; tokens outlive account deletion.
	var user model.User
	err = database.DB().WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Unauthorized
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	access, refresh, expiresIn, err := token.GenerateTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	return &dto.RefreshTokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	}, nil
}

func (s *AuthService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	uid := strconv.FormatInt(user.PublicID, 10)
	access, refresh, expiresIn, err := token.GenerateTokenPair(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
		User: dto.UserSnapshot{
			ID:       uid,
			Username: user.Username,
		},
	}, nil
}
