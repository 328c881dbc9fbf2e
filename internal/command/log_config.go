package command

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/joeycumines/hudcheck/internal/config"
)

// logConfig holds resolved logging configuration.
type logConfig struct {
	level   slog.Level
	logFile io.WriteCloser // nil if no file logging
}

// resolveLogConfig resolves log configuration from flags and config
// defaults. Flag values take precedence; config values are used when flags
// are empty. The caller must Close() the returned logConfig.logFile when
// done (if non-nil).
func resolveLogConfig(flagPath, flagLevel string, cfg *config.Config) (logConfig, error) {
	schema := config.DefaultSchema()
	if cfg == nil {
		cfg = config.NewConfig()
	}
	var lc logConfig

	levelStr := flagLevel
	if levelStr == "" {
		levelStr = schema.Resolve(cfg, "log.level")
	}
	switch strings.ToLower(levelStr) {
	case "debug":
		lc.level = slog.LevelDebug
	case "info", "":
		lc.level = slog.LevelInfo
	case "warn":
		lc.level = slog.LevelWarn
	case "error":
		lc.level = slog.LevelError
	default:
		return lc, fmt.Errorf("invalid log level: %s", levelStr)
	}

	logPath := flagPath
	if logPath == "" {
		logPath = schema.Resolve(cfg, "log.file")
	}
	if logPath == "" {
		return lc, nil
	}

	maxSizeMB, err := schema.ResolveInt(cfg, "log.max-size-mb")
	if err != nil || maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	// 0 keeps every rotated file
	maxFiles, err := schema.ResolveInt(cfg, "log.max-files")
	if err != nil || maxFiles < 0 {
		maxFiles = 5
	}

	lc.logFile = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSizeMB,
		MaxBackups: maxFiles,
	}
	return lc, nil
}

// newLogger returns a JSON logger on the log file when one is configured,
// otherwise a text logger on stderr.
func (lc logConfig) newLogger(stderr io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lc.level}
	if lc.logFile != nil {
		return slog.New(slog.NewJSONHandler(lc.logFile, opts))
	}
	return slog.New(slog.NewTextHandler(stderr, opts))
}
