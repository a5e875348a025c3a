package lib

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordLogger struct {
	lines []string
}

func (l *recordLogger) Print(a ...any) {
	l.lines = append(l.lines, fmt.Sprint(a...))
}

func (l *recordLogger) Println(a ...any) {
	l.Print(a...)
}

func (l *recordLogger) Printf(format string, a ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, a...))
}

func TestLogWriterSplitsLines(t *testing.T) {
	log := &recordLogger{}
	writer := NewLogWriter(log, "imap: ")

	_, _ = writer.Write([]byte("* OK ready\r\na1 LOG"))
	assert.Equal(t, []string{"imap: * OK ready"}, log.lines)

	n, err := writer.Write([]byte("IN user\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, []string{"imap: * OK ready", "imap: a1 LOGIN user"}, log.lines)
}
