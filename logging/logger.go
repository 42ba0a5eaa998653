package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init 配置全局 JSON 日志
func Init(debug bool) *slog.Logger {
	return InitWriter(os.Stdout, debug)
}

// InitWriter 同 Init，输出到指定 writer
func InitWriter(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}
