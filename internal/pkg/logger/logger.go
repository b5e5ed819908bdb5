// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Init 配置全局 zerolog Logger。
// 每个服务启动时调用一次，service 字段会出现在所有日志行中。
func Init(serviceName string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zlog.Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// Ctx 返回一个绑定了当前链路 trace_id 的 Logger。
// 如果 context 中没有有效的 Span，则退化为全局 Logger。
func Ctx(ctx context.Context) *zerolog.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return &zlog.Logger
	}
	l := zlog.With().Str("trace_id", spanCtx.TraceID().String()).Logger()
	return &l
}
