package mailbox

import (
	"io"
	"time"
)

type Message struct {
	// The message unique identifier.
	Uid uint32
	// The message flags.
	Flags []string
	// The date the message was received by the server.
	InternalDate time.Time
	// The message size.
	Size uint32
	// The message header section. Only the header is fetched for a preview.
	Header io.ReadCloser
}
