package log

import (
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Setup builds the service-wide logger. The otelzap wrapper lets handlers
// attach the request context via Log.Ctx(ctx).
func Setup() *otelzap.Logger {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		zapLogger = zap.NewNop()
	}

	return otelzap.New(zapLogger)
}
