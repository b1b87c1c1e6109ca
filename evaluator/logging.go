package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/lyraproj/issue/issue"
)

type (
	LogLevel string

	Logger interface {
		Logf(level LogLevel, format string, args ...interface{})

		LogIssue(issue issue.Reported)
	}

	stdlog struct {
		out       io.Writer
		err       io.Writer
		threshold int
	}

	LogEntry struct {
		level   LogLevel
		message string
	}

	ArrayLogger struct {
		entries []*LogEntry
	}

	discardLogger struct{}
)

const (
	DEBUG   = LogLevel(`debug`)
	INFO    = LogLevel(`info`)
	NOTICE  = LogLevel(`notice`)
	WARNING = LogLevel(`warning`)
	ERR     = LogLevel(`err`)
)

// LogLevels in order of increasing severity
var LogLevels = []LogLevel{DEBUG, INFO, NOTICE, WARNING, ERR}

// Severity returns the position of the level in LogLevels or -1 if the level is unknown
func (l LogLevel) Severity() int {
	for i, level := range LogLevels {
		if level == l {
			return i
		}
	}
	return -1
}

func Debug(logger Logger, format string, args ...interface{}) {
	logger.Logf(DEBUG, format, args...)
}

func Info(logger Logger, format string, args ...interface{}) {
	logger.Logf(INFO, format, args...)
}

// NewStdLogger returns a logger that writes debug, info, and notice entries to stdout and
// everything else to stderr. Entries below the given threshold are ignored.
func NewStdLogger(threshold LogLevel) Logger {
	return NewWriterLogger(os.Stdout, os.Stderr, threshold)
}

func NewWriterLogger(out, err io.Writer, threshold LogLevel) Logger {
	t := threshold.Severity()
	if t < 0 {
		t = NOTICE.Severity()
	}
	return &stdlog{out, err, t}
}

func (l *stdlog) Logf(level LogLevel, format string, args ...interface{}) {
	if level.Severity() < l.threshold {
		return
	}
	w := l.writerFor(level)
	fmt.Fprintf(w, `%s: `, level)
	fmt.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}

func (l *stdlog) writerFor(level LogLevel) io.Writer {
	switch level {
	case DEBUG, INFO, NOTICE:
		return l.out
	default:
		return l.err
	}
}

func (l *stdlog) LogIssue(i issue.Reported) {
	l.Logf(levelOf(i), `%s`, i.Error())
}

func NewArrayLogger() *ArrayLogger {
	return &ArrayLogger{make([]*LogEntry, 0, 16)}
}

// Entries returns the messages logged with the given level
func (l *ArrayLogger) Entries(level LogLevel) (result []string) {
	result = make([]string, 0, 8)
	for _, entry := range l.entries {
		if entry.level == level {
			result = append(result, entry.message)
		}
	}
	return
}

func (l *ArrayLogger) Logf(level LogLevel, format string, args ...interface{}) {
	l.entries = append(l.entries, &LogEntry{level, fmt.Sprintf(format, args...)})
}

func (l *ArrayLogger) LogIssue(i issue.Reported) {
	l.entries = append(l.entries, &LogEntry{levelOf(i), i.Error()})
}

// NewDiscardLogger returns a logger that ignores everything
func NewDiscardLogger() Logger {
	return discardLogger{}
}

func (discardLogger) Logf(level LogLevel, format string, args ...interface{}) {}

func (discardLogger) LogIssue(i issue.Reported) {}

func levelOf(i issue.Reported) LogLevel {
	switch i.Severity() {
	case issue.SEVERITY_ERROR:
		return ERR
	case issue.SEVERITY_WARNING, issue.SEVERITY_DEPRECATION:
		return WARNING
	default:
		return NOTICE
	}
}
