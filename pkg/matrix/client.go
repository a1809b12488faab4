package matrix

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"Habitual/config"
	"Habitual/pkg/logger"
)

// Client is the notification channel contract. A batch dispatcher calls
// Connect once, fans out SendMessage calls, then Disconnect on every exit
// path. Implementations must tolerate Disconnect without a prior Connect.
type Client interface {
	// Connect verifies the channel is reachable and credentials are valid.
	Connect(ctx context.Context) error

	// SendMessage posts a plain-text message into a room.
	SendMessage(ctx context.Context, roomID, body string) error

	// Disconnect releases the connection held for the current batch.
	Disconnect()
}

var (
	matrixClient Client
	matrixOnce   sync.Once
	matrixErr    error
)

// Init builds the process-wide channel client from config.
func Init() error {
	matrixOnce.Do(func() {
		cfg := config.Cfg

		switch cfg.MatrixProvider {
		case "rest":
			matrixClient, matrixErr = NewRestClient(cfg.MatrixHomeserverURL, cfg.MatrixAccessToken)
		case "mock":
			matrixClient = NewMockClient()
		default:
			matrixErr = fmt.Errorf("unsupported matrix provider: %s", cfg.MatrixProvider)
		}

		if matrixErr != nil {
			logger.Logger.Error("Failed to initialize matrix client", zap.Error(matrixErr))
			return
		}

		logger.Logger.Info("Matrix client initialized successfully",
			zap.String("provider", cfg.MatrixProvider),
			zap.String("homeserver", cfg.MatrixHomeserverURL),
		)
	})

	return matrixErr
}

func GetClient() Client {
	if matrixClient == nil {
		panic("matrix client not initialized, call matrix.Init() first")
	}
	return matrixClient
}
