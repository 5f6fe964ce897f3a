// Package logger is the process-wide charm logger for pact. Every command and
// the TUI log through it; the TUI owns the terminal, so lines go to a rotating
// file under the config directory and only reach stderr with --debug.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/pact/internal/constants"
)

// Rotation keeps a few days of request history for bug reports.
const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 14
)

// Logger stays nil until Init; the helpers below are no-ops until then, which
// keeps tests and early startup quiet.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Stderr receives the mirrored lines with Debug. Defaults to os.Stderr.
	Stderr io.Writer
}

// FilePath is the log file Init opens for a config directory.
func FilePath(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init opens the log file and installs Logger. Debug lowers the level to
// debug, adds caller info, and mirrors every line to stderr.
func Init(cfg Config) error {
	path := FilePath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		out = io.MultiWriter(stderr, out)
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
