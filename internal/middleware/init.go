package middleware

import (
	"go.uber.org/zap"

	"Habitual/pkg/logger"
)

// Init wires up middlewares that need prior setup.
func Init() error {
	if err := initAuthMiddleware(); err != nil {
		logger.Logger.Error("Failed to initialize auth middleware", zap.Error(err))
		return err
	}

	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
