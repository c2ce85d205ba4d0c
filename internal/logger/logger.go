package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls level, format and destination of the application log.
type Config struct {
	// trace, debug, info, warn, error
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// text, json
	Format string `env:"LOG_FORMAT" envDefault:"text"`
	// stdout, file, both
	Output string `env:"LOG_OUTPUT" envDefault:"stdout"`

	Path       string `env:"LOG_PATH" envDefault:"./logs"`
	File       string `env:"LOG_FILE" envDefault:"app.log"`
	MaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"100"` // MB
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAge     int    `env:"LOG_MAX_AGE" envDefault:"7"` // days
	Compress   bool   `env:"LOG_COMPRESS" envDefault:"true"`
}

type contextKey string

// RequestIDKey carries the request id through a context.
const RequestIDKey contextKey = "request_id"

var (
	mu   sync.RWMutex
	base = logrus.New()
)

// Init replaces the application logger. Until it is called, logs go to stderr at info level.
func Init(cfg Config) error {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	var writers []io.Writer
	output := strings.ToLower(cfg.Output)
	if output == "file" || output == "both" {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Path, cfg.File),
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}
	if output != "file" {
		writers = append(writers, os.Stdout)
	}
	l.SetOutput(io.MultiWriter(writers...))

	mu.Lock()
	base = l
	mu.Unlock()
	return nil
}

// Get returns the application logger.
func Get() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// SetOutput redirects the current logger, mostly for tests.
func SetOutput(w io.Writer) {
	Get().SetOutput(w)
}

func WithModule(module string) *logrus.Entry {
	return Get().WithField("module", module)
}

// WithCollection tags an entry with a document store path.
func WithCollection(collection string) *logrus.Entry {
	return Get().WithField("collection", collection)
}

func WithContext(ctx context.Context) *logrus.Entry {
	entry := Get().WithContext(ctx)
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		entry = entry.WithField("request_id", id)
	}
	return entry
}
