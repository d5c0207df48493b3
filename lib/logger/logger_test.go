package logger

import (
	"bytes"
	"testing"

	"cloud.google.com/go/logging"
)

func TestLogger_Local(t *testing.T) {
	tests := []struct {
		name      string
		projectID string
		opts      []LoggerOption
		log       func(l *Logger)
		want      string
	}{
		{name: "info",
			opts: []LoggerOption{WithLogName("test")},
			log:  func(l *Logger) { l.Info("hello") },
			want: "Info test: hello\n"},
		{name: "debug dropped",
			opts: []LoggerOption{WithLogName("test")},
			log:  func(l *Logger) { l.Debug("hidden") },
			want: ""},
		{name: "debug on",
			opts: []LoggerOption{WithLogName("test"), WithDebug(true)},
			log:  func(l *Logger) { l.Debugf("%d dice", 3) },
			want: "Debug test: 3 dice\n"},
		{name: "prefix",
			opts: []LoggerOption{WithLogName("test"), WithPrefix("cli: ")},
			log:  func(l *Logger) { l.Errorf("bad %s", "roll") },
			want: "Error test: cli: bad roll\n"},
		{name: "default severity",
			opts: []LoggerOption{WithLogName("test"), WithDefaultSeverity(logging.Warning)},
			log:  func(l *Logger) { l.Printf("careful") },
			want: "Warning test: careful\n"},
		{name: "local with a project",
			projectID: "test_project",
			opts:      []LoggerOption{WithLogName("test"), WithLocal(true)},
			log:       func(l *Logger) { l.Critical("down") },
			want:      "Critical test: down\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(tt.projectID, append(tt.opts, WithWriter(&buf))...)
			if !l.Local() {
				t.Fatalf("New() is not local")
			}
			tt.log(l)
			if got := buf.String(); got != tt.want {
				t.Errorf("logged %q, want %q", got, tt.want)
			}
			if err := l.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
	}
}
