package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	xterm "golang.org/x/term"
)

// Prompter asks questions to the operator
type Prompter struct {
	input  io.Reader
	reader *bufio.Reader
	output io.Writer
}

func NewPrompter(input io.Reader, output io.Writer) *Prompter {
	return &Prompter{
		input:  input,
		reader: bufio.NewReader(input),
		output: output,
	}
}

// ReadLine displays the question and returns the answer without the end of line.
// It returns io.EOF when the input is closed before anything was typed.
func (p *Prompter) ReadLine(question string) (string, error) {
	fmt.Fprint(p.output, question)
	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadSecret is like ReadLine but the answer is not echoed when the input is a terminal
func (p *Prompter) ReadSecret(question string) (string, error) {
	file, ok := p.input.(*os.File)
	if !ok || !xterm.IsTerminal(int(file.Fd())) {
		return p.ReadLine(question)
	}
	fmt.Fprint(p.output, question)
	secret, err := xterm.ReadPassword(int(file.Fd()))
	fmt.Fprintln(p.output)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
