package term

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	buffer := &bytes.Buffer{}
	SetOutput(buffer)
	defer SetOutput(nil)
	defer SetLevel(LevelInfo)

	testData := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug 1\ninfo 2\nwarn 3\nerror 4\nprint 5\n"},
		{LevelInfo, "info 2\nwarn 3\nerror 4\nprint 5\n"},
		{LevelWarn, "warn 3\nerror 4\nprint 5\n"},
		{LevelError, "error 4\nprint 5\n"},
	}
	for _, testItem := range testData {
		buffer.Reset()
		SetLevel(testItem.level)
		Debugf("debug %d", 1)
		Infof("info %d", 2)
		Warnf("warn %d", 3)
		Errorf("error %d", 4)
		Printf("print %d", 5)
		assert.Equal(t, testItem.expected, buffer.String())
	}
}

func TestPrintWithoutFormat(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	buffer := &bytes.Buffer{}
	SetOutput(buffer)
	defer SetOutput(nil)

	Info("connected")
	Error("failed")
	Print("plain")
	assert.Equal(t, "connected\nfailed\nplain\n", buffer.String())
}
