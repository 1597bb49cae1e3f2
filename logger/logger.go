// logger/logger.go
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

type sink struct {
	loggers [4]*log.Logger
}

type Logger struct {
	console  *sink
	file     *sink
	fileHand *os.File
	minLevel LogLevel
}

var (
	defaultLogger *Logger
	once          sync.Once
	mu            sync.Mutex
)

var levelNames = [4]string{"[DEBUG] ", "[INFO]  ", "[WARN]  ", "[ERROR] "}
var levelColors = [4]string{colorGray, colorReset, colorYellow, colorRed}

func newSink(w io.Writer, colored bool) *sink {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	s := &sink{}
	for lvl := DEBUG; lvl <= ERROR; lvl++ {
		prefix := levelNames[lvl]
		if colored {
			prefix = levelColors[lvl] + prefix + colorReset
		}
		s.loggers[lvl] = log.New(w, prefix, flags)
	}
	return s
}

// ensureInitialized creates a console-only logger if Init was never called
func ensureInitialized() {
	once.Do(func() {
		if defaultLogger == nil {
			defaultLogger = &Logger{
				console:  newSink(os.Stdout, true),
				minLevel: DEBUG,
			}
		}
	})
}

// Init initializes the logger with optional file and console output.
// If filename is empty, logs only to console.
// If console is false, logs only to file.
func Init(filename string, console bool) error {
	mu.Lock()
	defer mu.Unlock()

	if defaultLogger != nil && defaultLogger.fileHand != nil {
		defaultLogger.fileHand.Close()
	}

	l := &Logger{minLevel: DEBUG}

	if filename != "" {
		file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		l.fileHand = file
		l.file = newSink(file, false)
	}
	if console {
		l.console = newSink(os.Stdout, true)
	}
	if l.file == nil && l.console == nil {
		return fmt.Errorf("no output destination specified")
	}

	defaultLogger = l
	return nil
}

// SetLevel sets the minimum log level; messages below it are dropped.
func SetLevel(level LogLevel) {
	ensureInitialized()
	mu.Lock()
	defer mu.Unlock()
	defaultLogger.minLevel = level
}

// Close closes the log file if one is open
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger != nil && defaultLogger.fileHand != nil {
		defaultLogger.fileHand.Close()
		defaultLogger.fileHand = nil
		defaultLogger.file = nil
	}
}

func (l *Logger) output(level LogLevel, msg string) {
	if level < l.minLevel {
		return
	}
	if l.console != nil {
		l.console.loggers[level].Output(3, msg)
	}
	if l.file != nil {
		l.file.loggers[level].Output(3, msg)
	}
}

// Debug logs a debug message
func Debug(v ...interface{}) {
	ensureInitialized()
	defaultLogger.output(DEBUG, fmt.Sprint(v...))
}

// Debugf logs a formatted debug message
func Debugf(format string, v ...interface{}) {
	ensureInitialized()
	defaultLogger.output(DEBUG, fmt.Sprintf(format, v...))
}

// Info logs an info message
func Info(v ...interface{}) {
	ensureInitialized()
	defaultLogger.output(INFO, fmt.Sprint(v...))
}

// Infof logs a formatted info message
func Infof(format string, v ...interface{}) {
	ensureInitialized()
	defaultLogger.output(INFO, fmt.Sprintf(format, v...))
}

// Warn logs a warning message
func Warn(v ...interface{}) {
	ensureInitialized()
	defaultLogger.output(WARN, fmt.Sprint(v...))
}

// Warnf logs a formatted warning message
func Warnf(format string, v ...interface{}) {
	ensureInitialized()
	defaultLogger.output(WARN, fmt.Sprintf(format, v...))
}

// Error logs an error message
func Error(v ...interface{}) {
	ensureInitialized()
	defaultLogger.output(ERROR, fmt.Sprint(v...))
}

// Errorf logs a formatted error message
func Errorf(format string, v ...interface{}) {
	ensureInitialized()
	defaultLogger.output(ERROR, fmt.Sprintf(format, v...))
}

// Fatal logs an error message and exits the program
func Fatal(v ...interface{}) {
	ensureInitialized()
	defaultLogger.output(ERROR, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf logs a formatted error message and exits the program
func Fatalf(format string, v ...interface{}) {
	ensureInitialized()
	defaultLogger.output(ERROR, fmt.Sprintf(format, v...))
	os.Exit(1)
}
