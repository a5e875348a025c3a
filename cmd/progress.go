package cmd

import "github.com/creativeprojects/mailpurge/term"

// progresser displays a line each time the session reports progress
type progresser struct {
	format string
}

func newProgresser(format string) *progresser {
	return &progresser{
		format: format,
	}
}

func (p *progresser) Progress(done, total int) {
	term.Printf(p.format, done, total)
}
