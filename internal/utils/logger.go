package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

type BuildLogger struct {
	file       *os.File
	logger     *log.Logger
	multiWrite io.Writer
}

// NewBuildLogger logs to stdout and to logs/<name>/build_<name>_<timestamp>.log under logDir.
func NewBuildLogger(logDir, name string) (*BuildLogger, error) {
	// Sanitize name for file system
	sanitized := strings.ReplaceAll(strings.ToLower(name), " ", "_")

	dir := filepath.Join(logDir, sanitized)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(dir, fmt.Sprintf("build_%s_%s.log", sanitized, timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	multiWrite := io.MultiWriter(os.Stdout, file)

	return &BuildLogger{
		file:       file,
		logger:     newLogger(multiWrite, sanitized),
		multiWrite: multiWrite,
	}, nil
}

// NewConsoleLogger logs to w only.
func NewConsoleLogger(w io.Writer, prefix string) *BuildLogger {
	return &BuildLogger{
		logger:     newLogger(w, prefix),
		multiWrite: w,
	}
}

func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006/01/02 15:04:05.000000",
		Prefix:          prefix,
		Level:           log.DebugLevel,
	})
}

func (bl *BuildLogger) LogInfo(format string, v ...interface{}) {
	bl.logger.Info(fmt.Sprintf(format, v...))
}

func (bl *BuildLogger) LogError(format string, v ...interface{}) {
	bl.logger.Error(fmt.Sprintf(format, v...))
}

func (bl *BuildLogger) LogDebug(format string, v ...interface{}) {
	bl.logger.Debug(fmt.Sprintf(format, v...))
}

// Writer exposes the underlying destination, e.g. for gin's default writer.
func (bl *BuildLogger) Writer() io.Writer {
	return bl.multiWrite
}

func (bl *BuildLogger) Close() error {
	if bl.file == nil {
		return nil
	}
	return bl.file.Close()
}
