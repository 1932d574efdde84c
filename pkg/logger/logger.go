package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config 定义日志初始化配置
// Level 支持 debug/info/warn/error，Environment 支持 prod/production/dev 等
// Format 为 json 时强制 JSON 输出，否则生产环境 JSON、其他环境文本
// File 非空时同时写入滚动日志文件
type Config struct {
	Level       string
	Environment string
	Format      string
	File        string
	WithSource  bool
}

var (
	global *slog.Logger
	once   sync.Once
)

func levelFromString(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.New("invalid log level: " + level)
	}
}

func useJSON(cfg Config) bool {
	if strings.EqualFold(cfg.Format, "json") {
		return true
	}
	env := strings.ToLower(cfg.Environment)
	return env == "prod" || env == "production"
}

// rotatingWriter 返回 lumberjack 滚动文件
func rotatingWriter(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // MB
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	}
}

// New 根据配置创建新的 slog.Logger，不设置全局实例
func New(cfg Config) (*slog.Logger, error) {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg Config, out io.Writer) (*slog.Logger, error) {
	lvl, err := levelFromString(cfg.Level)
	if err != nil {
		return nil, err
	}

	if cfg.File != "" {
		out = io.MultiWriter(out, rotatingWriter(cfg.File))
	}

	handlerOpts := &slog.HandlerOptions{Level: lvl, AddSource: cfg.WithSource}
	var handler slog.Handler
	if useJSON(cfg) {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	return slog.New(handler), nil
}

// Init 初始化全局日志实例，重复调用将返回首次创建的 logger
func Init(cfg Config) (*slog.Logger, error) {
	var initErr error
	once.Do(func() {
		global, initErr = New(cfg)
		if initErr == nil {
			slog.SetDefault(global)
		}
	})
	return global, initErr
}

// L 返回已初始化的全局 logger，未初始化时退回 slog.Default
func L() *slog.Logger {
	if global == nil {
		return slog.Default()
	}
	return global
}

// LogUpstreamCall 记录外部服务调用的结构化日志
// service: translation/composer
// provider: google/anthropic/gemini/openai
// durationMs: 调用耗时（毫秒）
func LogUpstreamCall(logger *slog.Logger, service, provider string, durationMs int64, err error) {
	attrs := []slog.Attr{
		slog.String("service", service),
		slog.String("provider", provider),
		slog.Int64("duration_ms", durationMs),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		logger.LogAttrs(context.Background(), slog.LevelError, "upstream call failed", attrs...)
	} else {
		logger.LogAttrs(context.Background(), slog.LevelInfo, "upstream call finished", attrs...)
	}
}
