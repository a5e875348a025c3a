package lib

import (
	"bytes"
	"testing"
)

type Logger interface {
	Print(a ...any)
	Println(a ...any)
	Printf(format string, a ...any)
}

type NoLog struct{}

func (l *NoLog) Print(a ...any)                 {}
func (l *NoLog) Println(a ...any)               {}
func (l *NoLog) Printf(format string, a ...any) {}

type TestLogger struct {
	t      *testing.T
	prefix string
}

func NewTestLogger(t *testing.T, prefix string) *TestLogger {
	return &TestLogger{
		t:      t,
		prefix: prefix,
	}
}

func (l *TestLogger) Print(a ...any) {
	l.t.Helper()
	if l.prefix == "" {
		l.t.Log(a...)
	} else {
		l.t.Log(append([]any{l.prefix + ":"}, a...)...)
	}
}

func (l *TestLogger) Println(a ...any) {
	l.t.Helper()
	l.Print(a...)
}

func (l *TestLogger) Printf(format string, a ...any) {
	l.t.Helper()
	if l.prefix != "" {
		format = l.prefix + ": " + format
	}
	l.t.Logf(format, a...)
}

// LogWriter sends each line written to it to a Logger.
// It is used to receive the raw protocol trace from the IMAP client.
type LogWriter struct {
	log    Logger
	prefix string
	buffer []byte
}

func NewLogWriter(log Logger, prefix string) *LogWriter {
	return &LogWriter{
		log:    log,
		prefix: prefix,
	}
}

func (w *LogWriter) Write(p []byte) (int, error) {
	w.buffer = append(w.buffer, p...)
	for {
		index := bytes.IndexByte(w.buffer, '\n')
		if index < 0 {
			break
		}
		line := bytes.TrimRight(w.buffer[:index], "\r")
		w.log.Printf("%s%s", w.prefix, line)
		w.buffer = w.buffer[index+1:]
	}
	return len(p), nil
}
