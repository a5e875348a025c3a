package mailbox

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
)

const (
	NoSubject = "No Subject"
	Unknown   = "Unknown"
)

// Summary is what the operator sees of a message before deciding to delete it
type Summary struct {
	Uid     uint32
	From    string
	Subject string
	Date    string
}

// ParseSummary reads the message header from r. Missing headers are replaced by a placeholder.
func ParseSummary(uid uint32, r io.Reader) (Summary, error) {
	header, err := textproto.ReadHeader(bufio.NewReader(r))
	if err != nil {
		return Summary{}, fmt.Errorf("cannot read header of message %d: %w", uid, err)
	}
	h := mail.Header{Header: message.Header{Header: header}}
	return Summary{
		Uid:     uid,
		From:    headerText(&h, "From", Unknown),
		Subject: headerText(&h, "Subject", NoSubject),
		Date:    headerText(&h, "Date", Unknown),
	}, nil
}

// headerText decodes the RFC 2047 encoded words, or returns the raw value when the charset is unknown
func headerText(h *mail.Header, key, placeholder string) string {
	raw := h.Get(key)
	if strings.TrimSpace(raw) == "" {
		return placeholder
	}
	text, err := h.Text(key)
	if err != nil {
		return raw
	}
	return text
}
