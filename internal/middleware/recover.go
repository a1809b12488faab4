package middleware

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"Habitual/config"
	"Habitual/pkg/errors"
	"Habitual/pkg/logger"
	"Habitual/pkg/response"
)

// RecoverConfig controls panic handling.
type RecoverConfig struct {
	EnableStackTrace bool
	// Return panic details in the response body outside production.
	ExposeDetails bool
	IsProduction  bool
}

func NewRecoverConfig() RecoverConfig {
	return RecoverConfig{
		EnableStackTrace: true,
		ExposeDetails:    !config.Cfg.IsProduction(),
		IsProduction:     config.Cfg.IsProduction(),
	}
}

// RecoverMiddleware turns handler panics into logged 500 responses.
func RecoverMiddleware() app.HandlerFunc {
	cfg := NewRecoverConfig()
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				handlePanic(ctx, c, err, cfg)
			}
		}()

		c.Next(ctx)
	}
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}, cfg RecoverConfig) {
	var stack []byte
	if cfg.EnableStackTrace {
		stack = currentStack()
	}

	fields := []zap.Field{
		zap.String("panic", fmt.Sprintf("%v", err)),
		zap.String("path", string(c.Path())),
		zap.String("method", string(c.Method())),
		zap.String("client_ip", c.ClientIP()),
	}
	if userID, exists := GetUserID(ctx, c); exists {
		fields = append(fields, zap.String("user_id", userID))
	}
	if len(stack) > 0 {
		fields = append(fields, zap.ByteString("stack", stack))
	}
	logger.Logger.Error("[PANIC RECOVERED]", fields...)

	errDef := errors.Definition{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "Internal server error",
	}
	if cfg.ExposeDetails {
		errDef.Message = fmt.Sprintf("Internal error: %v", err)
		response.ErrorWithDetails(ctx, c, errDef, map[string]interface{}{
			"panic":     fmt.Sprintf("%v", err),
			"timestamp": time.Now().Format(time.RFC3339),
			"stack":     string(stack),
		})
		return
	}
	response.Error(ctx, c, errDef)
}

// currentStack captures the panicking goroutine's frames, skipping the
// recover plumbing and runtime internals.
func currentStack() []byte {
	var buf bytes.Buffer
	for i := 3; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil || strings.Contains(file, "/runtime/") {
			continue
		}
		fmt.Fprintf(&buf, "  %s:%d\n    %s\n", file, line, fn.Name())
	}
	return buf.Bytes()
}
