package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents logging levels
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// ParseLevel maps a level name onto a LogLevel, defaulting to info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Config holds essential logger configuration
type Config struct {
	Level        LogLevel `json:"level" yaml:"level"`
	Format       string   `json:"format" yaml:"format"`               // "json", "console"
	Output       string   `json:"output" yaml:"output"`               // "stdout", "stderr", file path
	EnableCaller bool     `json:"enable_caller" yaml:"enable_caller"` // Include file and line info
	Component    string   `json:"component" yaml:"component"`         // Default component name
	Environment  string   `json:"environment" yaml:"environment"`     // Environment (dev, staging, prod)
}

// Logger wraps a zap.SugaredLogger behind level methods that take
// alternating key/value arguments.
type Logger struct {
	sugar  *zap.SugaredLogger
	config Config
}

// DefaultConfig returns a default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:        LevelInfo,
		Format:       "json",
		Output:       "stderr",
		EnableCaller: false,
		Environment:  "development",
	}
}

// New creates a logger instance from config
func New(config Config) *Logger {
	var level zapcore.Level
	switch config.Level {
	case LevelDebug:
		level = zapcore.DebugLevel
	case LevelInfo:
		level = zapcore.InfoLevel
	case LevelWarn:
		level = zapcore.WarnLevel
	case LevelError:
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	// Determine output writer
	var output zapcore.WriteSyncer
	switch config.Output {
	case "stdout":
		output = zapcore.Lock(os.Stdout)
	case "stderr":
		output = zapcore.Lock(os.Stderr)
	default:
		// File output
		if file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666); err == nil {
			output = zapcore.AddSync(file)
		} else {
			output = zapcore.Lock(os.Stderr) // Fallback to stderr
		}
	}

	var encoder zapcore.Encoder
	switch config.Format {
	case "console", "text":
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "ts"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, output, zap.NewAtomicLevelAt(level))

	opts := []zap.Option{zap.AddCallerSkip(1)}
	if config.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}

	sugar := zap.New(core, opts...).Sugar()

	// Add default context
	if config.Component != "" {
		sugar = sugar.With("component", config.Component)
	}
	if config.Environment != "" {
		sugar = sugar.With("environment", config.Environment)
	}

	return &Logger{
		sugar:  sugar,
		config: config,
	}
}

// WithContext creates a new logger with additional context
func (l *Logger) WithContext(args ...interface{}) *Logger {
	return &Logger{
		sugar:  l.sugar.With(args...),
		config: l.config,
	}
}

// WithComponent creates a logger with component context
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithContext("component", component)
}

// Debug logs at debug level
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.sugar.Debugw(msg, args...)
}

// Info logs at info level
func (l *Logger) Info(msg string, args ...interface{}) {
	l.sugar.Infow(msg, args...)
}

// Warn logs at warn level
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.sugar.Warnw(msg, args...)
}

// Error logs at error level
func (l *Logger) Error(msg string, args ...interface{}) {
	l.sugar.Errorw(msg, args...)
}

// Fatal logs at fatal level and exits
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.sugar.Fatalw(msg, args...)
}

// Close flushes any buffered log entries
func (l *Logger) Close() error {
	return l.sugar.Sync()
}
