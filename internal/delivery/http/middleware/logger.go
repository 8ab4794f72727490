package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Logger - middleware для логирования запросов
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		// локальный сервер: обычные запросы пишутся только на debug
		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			logger.Warn("HTTP request", fields...)
		} else {
			logger.Debug("HTTP request", fields...)
		}
		return err
	}
}
