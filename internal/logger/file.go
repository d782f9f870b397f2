package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/omopscript/internal/models"
)

// FileLogger writes a per-run log file into a log directory.
// Each run gets run-YYYYMMDD-HHMMSS.log and latest.log is repointed at it.
// It is thread-safe and implements Logger.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	runID    string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates the log directory if needed, opens a timestamped run
// log, and updates the latest.log symlink.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", timestamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		runID:    uuid.New().String(),
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== omopscript Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Run ID: %s\n", fl.runID))
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// RunID returns the identifier written in the run log header
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// Path returns the path of the current run log
func (fl *FileLogger) Path() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), level, message))
}

// LogSummary writes the scan summary at INFO level.
func (fl *FileLogger) LogSummary(summary models.ScanSummary) {
	if !fl.shouldLog("info") {
		return
	}

	ts := time.Now().Format("15:04:05")
	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] === SCAN SUMMARY ===\n", ts)
	for _, st := range models.ScanTypeOrder {
		fmt.Fprintf(&b, "[%s] %-14s %d\n", ts, strings.ToUpper(st.String())+" entries:", summary.Counts[st])
	}
	fmt.Fprintf(&b, "[%s] %-14s %d\n", ts, "Total:", summary.Total)
	fmt.Fprintf(&b, "[%s] %-14s %d\n", ts, "Unknown dates:", summary.Unknown)

	fl.writeRunLog(b.String())
}

// Close flushes and closes the run log
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}
	fmt.Fprintf(fl.runLog, "\nFinished at: %s\n", time.Now().Format(time.RFC3339))
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}

func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return
	}
	fl.runLog.WriteString(message)
}
