package utils

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// LogLevel represents different log levels
type LogLevel string

const (
	INFO  LogLevel = "INFO"
	WARN  LogLevel = "WARN"
	ERROR LogLevel = "ERROR"
	DEBUG LogLevel = "DEBUG"
)

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp time.Time   `json:"timestamp"`
	Level     LogLevel    `json:"level"`
	Component string      `json:"component,omitempty"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Logger provides structured JSON logging
type Logger struct {
	logger    *log.Logger
	component string
}

// NewLogger creates a new structured logger
func NewLogger() *Logger {
	return &Logger{
		logger: log.New(os.Stdout, "", 0),
	}
}

// WithComponent returns a logger that tags every entry with the given
// component name (e.g. "parser", "scorer", "http").
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		logger:    l.logger,
		component: component,
	}
}

// Info logs an info message
func (l *Logger) Info(message string, data ...interface{}) {
	l.log(INFO, message, data...)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, data ...interface{}) {
	l.log(WARN, message, data...)
}

// Error logs an error message
func (l *Logger) Error(message string, err error, data ...interface{}) {
	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     ERROR,
		Component: l.component,
		Message:   message,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if len(data) > 0 {
		entry.Data = data[0]
	}
	l.output(entry)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, data ...interface{}) {
	l.log(DEBUG, message, data...)
}

func (l *Logger) log(level LogLevel, message string, data ...interface{}) {
	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Component: l.component,
		Message:   message,
	}
	if len(data) > 0 {
		entry.Data = data[0]
	}
	l.output(entry)
}

// output writes the log entry as a single JSON line
func (l *Logger) output(entry LogEntry) {
	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		log.Printf("Error marshaling log entry: %v", err)
		return
	}
	l.logger.Println(string(jsonBytes))
}

// Global logger instance
var GlobalLogger = NewLogger()

// Convenience functions for the global logger
func LogInfo(message string, data ...interface{}) {
	GlobalLogger.Info(message, data...)
}

func LogWarn(message string, data ...interface{}) {
	GlobalLogger.Warn(message, data...)
}

func LogError(message string, err error, data ...interface{}) {
	GlobalLogger.Error(message, err, data...)
}

func LogDebug(message string, data ...interface{}) {
	GlobalLogger.Debug(message, data...)
}
