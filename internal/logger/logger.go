package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"barcodereader/internal/config"

	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger provides leveled logging (info/warning/error) to rotated files.
// Warnings and errors are also copied to the diagnostic writer.
type Logger struct {
	infoLog    *log.Logger
	warningLog *log.Logger
	errorLog   *log.Logger
	files      []io.Closer
	logDir     string
	runID      string
	mu         sync.Mutex
}

// NewLogger creates a Logger and ensures the log directory exists.
// diag receives copies of warnings and errors; nil means os.Stderr.
func NewLogger(cfg *config.Config, runID string, diag io.Writer) (*Logger, error) {
	if err := os.MkdirAll(cfg.LogDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if diag == nil {
		diag = os.Stderr
	}

	logger := &Logger{
		logDir: cfg.LogDirectory,
		runID:  runID,
	}

	logger.setupLoggers(diag)
	return logger, nil
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	l := &Logger{}
	l.infoLog = log.New(io.Discard, "", 0)
	l.warningLog = log.New(io.Discard, "", 0)
	l.errorLog = log.New(io.Discard, "", 0)
	return l
}

// setupLoggers initializes writers and per-level loggers.
func (l *Logger) setupLoggers(diag io.Writer) {
	infoFile := l.openLogFile("info.log")
	warningFile := l.openLogFile("warning.log")
	errorFile := l.openLogFile("error.log")

	warningWriter := io.MultiWriter(diag, warningFile)
	errorWriter := io.MultiWriter(diag, errorFile)

	tag := ""
	if l.runID != "" {
		tag = "[" + l.runID + "] "
	}

	l.infoLog = log.New(infoFile, "ℹ️  INFO    "+tag, log.Ldate|log.Ltime|log.Lshortfile)
	l.warningLog = log.New(warningWriter, "⚠️  WARNING "+tag, log.Ldate|log.Ltime|log.Lshortfile)
	l.errorLog = log.New(errorWriter, "❌ ERROR   "+tag, log.Ldate|log.Ltime|log.Lshortfile)
}

// openLogFile returns a size-rotated writer for the named file.
func (l *Logger) openLogFile(name string) io.Writer {
	file := &lumberjack.Logger{
		Filename:   filepath.Join(l.logDir, name),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
	}
	l.files = append(l.files, file)
	return file
}

// Info writes a formatted info-level log entry.
func (l *Logger) Info(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infoLog.Output(2, fmt.Sprintf(format, v...))
}

// Warning writes a formatted warning-level log entry.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warningLog.Output(2, fmt.Sprintf(format, v...))
}

// Error writes a formatted error-level log entry.
func (l *Logger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorLog.Output(2, fmt.Sprintf(format, v...))
}

// RunID returns the identifier attached to every line of this run.
func (l *Logger) RunID() string {
	return l.runID
}

// Close flushes and closes the log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var err error
	for _, f := range l.files {
		err = multierr.Append(err, f.Close())
	}
	l.files = nil
	return err
}
