package term

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var (
	lvl              = LevelInfo
	output io.Writer = os.Stdout
)

func SetLevel(level Level) {
	lvl = level
}

// SetOutput redirects all the messages. Use nil to go back to the standard output.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	output = w
}

func GetOutput() io.Writer {
	return output
}

// Print displays a message regardless of the level
func Print(a ...interface{}) {
	fmt.Fprintln(output, a...)
}

// Printf displays a message regardless of the level
func Printf(format string, a ...interface{}) {
	fmt.Fprintf(output, format+"\n", a...)
}

func Debug(a ...interface{}) {
	if lvl > LevelDebug {
		return
	}
	fmt.Fprint(output, pterm.FgLightCyan.Sprintln(a...))
}

func Debugf(format string, a ...interface{}) {
	if lvl > LevelDebug {
		return
	}
	fmt.Fprintln(output, pterm.FgLightCyan.Sprintf(format, a...))
}

func Info(a ...interface{}) {
	if lvl > LevelInfo {
		return
	}
	fmt.Fprint(output, pterm.FgLightGreen.Sprintln(a...))
}

func Infof(format string, a ...interface{}) {
	if lvl > LevelInfo {
		return
	}
	fmt.Fprintln(output, pterm.FgLightGreen.Sprintf(format, a...))
}

func Warn(a ...interface{}) {
	if lvl > LevelWarn {
		return
	}
	fmt.Fprint(output, pterm.FgYellow.Sprintln(a...))
}

func Warnf(format string, a ...interface{}) {
	if lvl > LevelWarn {
		return
	}
	fmt.Fprintln(output, pterm.FgYellow.Sprintf(format, a...))
}

func Error(a ...interface{}) {
	fmt.Fprint(output, pterm.FgLightRed.Sprintln(a...))
}

func Errorf(format string, a ...interface{}) {
	fmt.Fprintln(output, pterm.FgLightRed.Sprintf(format, a...))
}
