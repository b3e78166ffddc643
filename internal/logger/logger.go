package logger

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/aidant/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	path string
)

type Config struct {
	Debug bool
	// ConfigDir is the directory holding the data file; logs go to its logs/ subdirectory.
	ConfigDir string
}

// FilePath is where Init writes the log for a given config directory.
func FilePath(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Path returns the active log file, or "" before Init.
func Path() string {
	return path
}

// Init sets up the global logger. Warnings and errors always go to a rotating
// file; debug mode lowers the level and mirrors output to stderr.
func Init(cfg Config) error {
	file := FilePath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     90, // days
		Compress:   true,
	}

	level := log.WarnLevel
	var writer io.Writer = fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           level,
		Prefix:          constants.AppName,
	})
	path = file
	return nil
}

var (
	urlPassword = regexp.MustCompile(`(postgres(?:ql)?://[^:/@\s]+:)[^@\s]+@`)
	kvPassword  = regexp.MustCompile(`(password=)\S+`)
)

// redact masks PostgreSQL passwords so connection strings can be logged.
func redact(keyvals []interface{}) []interface{} {
	out := make([]interface{}, len(keyvals))
	for i, v := range keyvals {
		if i%2 == 1 {
			if k, ok := keyvals[i-1].(string); ok && strings.EqualFold(k, "password") {
				out[i] = "***"
				continue
			}
		}
		switch s := v.(type) {
		case string:
			s = urlPassword.ReplaceAllString(s, "${1}***@")
			out[i] = kvPassword.ReplaceAllString(s, "${1}***")
		case error:
			out[i] = redact([]interface{}{s.Error()})[0]
		default:
			out[i] = v
		}
	}
	return out
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, redact(keyvals)...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, redact(keyvals)...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, redact(keyvals)...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, redact(keyvals)...)
	}
}

// Fatal logs at error level and exits with code 1.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, redact(keyvals)...)
	}
	os.Exit(1)
}
