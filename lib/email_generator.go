package lib

import (
	"fmt"
	"strings"
	"time"
)

const messageTemplate = "From: %s\r\n" +
	"To: %s\r\n" +
	"Subject: %s\r\n" +
	"Date: %s\r\n" +
	"Message-ID: <%d@localhost/>\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n%s"

// GenerateEmail builds a small RFC 5322 message. An empty subject leaves out the Subject header.
func GenerateEmail(from, to, subject string, date time.Time, uid uint32) []byte {
	msg := fmt.Sprintf(messageTemplate, from, to, subject, date.Format(time.RFC1123Z), uid, "Hi there :)")
	if subject == "" {
		msg = strings.Replace(msg, "Subject: \r\n", "", 1)
	}
	return []byte(msg)
}
