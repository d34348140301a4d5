package helpers

import (
	"time"

	"appointment-service/internal/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type Meta struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data,omitempty"`
}

func RespSuccess(ctx *fiber.Ctx, log *otelzap.Logger, data interface{}, message string) error {
	return ctx.Status(fiber.StatusOK).JSON(Response{
		Meta: Meta{
			Success: true,
			Message: message,
		},
		Data: data,
	})
}

func RespError(ctx *fiber.Ctx, log *otelzap.Logger, err error) error {
	code := errors.HttpCode(err)
	return ctx.Status(code).JSON(Response{
		Meta: Meta{
			Success: false,
			Message: err.Error(),
			Errors:  []string{err.Error()},
		},
	})
}

// DurationCalculation returns how long from now until t, for scheduling
// delayed tasks.
func DurationCalculation(t time.Time) time.Duration {
	return time.Until(t)
}
