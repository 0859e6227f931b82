// Package logger is tivlo's process-wide structured logger. Output goes to a
// rotated file under the data directory; stderr is only used when debugging,
// because the TUI owns the terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/tivlo/internal/constants"
)

// Logger is nil until Init succeeds; the helpers below are no-ops until then.
var Logger *log.Logger

type Config struct {
	Debug   bool
	DataDir string
	// Level is one of debug, info, warn or error. Debug forces debug.
	Level string
	// JSON switches the file output to one JSON object per line.
	JSON bool
}

// FilePath is where Init writes the log for dataDir.
func FilePath(dataDir string) string {
	return filepath.Join(dataDir, "logs", constants.AppName+".log")
}

// Init builds the global logger.
func Init(cfg Config) error {
	level, err := parseLevel(cfg)
	if err != nil {
		return err
	}

	path := FilePath(cfg.DataDir)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, out)
	}

	l := log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	if cfg.JSON {
		l.SetFormatter(log.JSONFormatter)
	}
	Logger = l
	return nil
}

func parseLevel(cfg Config) (log.Level, error) {
	if cfg.Debug {
		return log.DebugLevel, nil
	}
	if strings.TrimSpace(cfg.Level) == "" {
		return log.WarnLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	return level, nil
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
