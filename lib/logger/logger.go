package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"cloud.google.com/go/logging"
)

//Logger writes severity tagged entries either to Google Cloud Logging or,
//when running locally, to a writer.
type Logger struct {
	projectID       string
	logName         string
	prefix          string
	debug           bool
	local           bool
	defaultSeverity logging.Severity

	mu     sync.Mutex
	out    io.Writer
	client *logging.Client
	cloud  *logging.Logger
}

//LoggerOption configures a Logger.
type LoggerOption func(*Logger)

//WithDebug enables Debug entries, which are dropped otherwise.
func WithDebug(debug bool) LoggerOption {
	return func(l *Logger) {
		l.debug = debug
	}
}

//WithDefaultSeverity sets the severity used by Printf.
func WithDefaultSeverity(s logging.Severity) LoggerOption {
	return func(l *Logger) {
		l.defaultSeverity = s
	}
}

//WithLogName sets the Cloud Logging log name, also shown in local output.
func WithLogName(name string) LoggerOption {
	return func(l *Logger) {
		l.logName = name
	}
}

//WithPrefix prepends prefix to every message.
func WithPrefix(prefix string) LoggerOption {
	return func(l *Logger) {
		l.prefix = prefix
	}
}

//WithLocal keeps the logger off Cloud Logging even when a project is set.
func WithLocal(local bool) LoggerOption {
	return func(l *Logger) {
		l.local = local
	}
}

//WithWriter sets where local entries are written. Defaults to stderr.
func WithWriter(w io.Writer) LoggerOption {
	return func(l *Logger) {
		l.out = w
	}
}

//New creates a Logger. Without a projectID, or when the Cloud Logging client
//cannot be created, entries are written locally.
func New(projectID string, opts ...LoggerOption) *Logger {
	l := &Logger{
		projectID:       projectID,
		logName:         "diceval",
		defaultSeverity: logging.Info,
		out:             os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.projectID == "" || l.local {
		l.local = true
		return l
	}
	client, err := logging.NewClient(context.Background(), l.projectID)
	if err != nil {
		l.local = true
		l.Errorf("failed to create logging client, logging locally: %v", err)
		return l
	}
	l.client = client
	l.cloud = client.Logger(l.logName)
	return l
}

//Local reports whether entries are written to the local writer.
func (l *Logger) Local() bool {
	return l.local
}

//Log writes entry. Debug entries are dropped unless debug is on.
func (l *Logger) Log(entry logging.Entry) {
	if entry.Severity == logging.Debug && !l.debug {
		return
	}
	if s, ok := entry.Payload.(string); ok && l.prefix != "" {
		entry.Payload = l.prefix + s
	}
	if l.local {
		l.mu.Lock()
		defer l.mu.Unlock()
		fmt.Fprintf(l.out, "%s %s: %v\n", entry.Severity, l.logName, entry.Payload)
		return
	}
	l.cloud.Log(entry)
}

func (l *Logger) Info(message interface{}) {
	l.Log(logging.Entry{
		Payload:  message,
		Severity: logging.Info,
	})
}
func (l *Logger) Debug(message interface{}) {
	l.Log(logging.Entry{
		Payload:  message,
		Severity: logging.Debug,
	})
}
func (l *Logger) Error(message interface{}) {
	l.Log(logging.Entry{
		Payload:  message,
		Severity: logging.Error,
	})
}
func (l *Logger) Critical(message interface{}) {
	l.Log(logging.Entry{
		Payload:  message,
		Severity: logging.Critical,
	})
}
func (l *Logger) Infof(format string, a ...interface{}) {
	l.Info(fmt.Sprintf(format, a...))
}
func (l *Logger) Debugf(format string, a ...interface{}) {
	l.Debug(fmt.Sprintf(format, a...))
}
func (l *Logger) Errorf(format string, a ...interface{}) {
	l.Error(fmt.Sprintf(format, a...))
}
func (l *Logger) Criticalf(format string, a ...interface{}) {
	l.Critical(fmt.Sprintf(format, a...))
}

//Printf logs at the default severity.
func (l *Logger) Printf(format string, a ...interface{}) {
	l.Log(logging.Entry{
		Payload:  fmt.Sprintf(format, a...),
		Severity: l.defaultSeverity,
	})
}

//Fatalf logs a critical entry, flushes and exits.
func (l *Logger) Fatalf(format string, a ...interface{}) {
	l.Criticalf(format, a...)
	l.Close()
	os.Exit(1)
}

//Close flushes pending Cloud Logging entries.
func (l *Logger) Close() error {
	if l.client == nil {
		return nil
	}
	return l.client.Close()
}

//Fatalf is log.Fatalf, for failures before a Logger exists.
func Fatalf(format string, a ...interface{}) {
	log.Fatalf(format, a...)
}

