package mailbox

import "strconv"

// Count is the message count of a folder, or the reason why it could not be obtained
type Count struct {
	messages  uint32
	available bool
	reason    error
}

// Available is the count of a folder that could be examined
func Available(messages uint32) Count {
	return Count{messages: messages, available: true}
}

// Unavailable records why a folder could not be examined
func Unavailable(reason error) Count {
	return Count{reason: reason}
}

func (c Count) IsAvailable() bool {
	return c.available
}

// Messages returns the count and true, or zero and false if the count is unavailable
func (c Count) Messages() (uint32, bool) {
	return c.messages, c.available
}

// Reason is nil for an available count
func (c Count) Reason() error {
	return c.reason
}

func (c Count) String() string {
	if !c.available {
		return ""
	}
	return strconv.FormatUint(uint64(c.messages), 10)
}

// FolderEntry is one line of the folder listing
type FolderEntry struct {
	Info  Info
	Count Count
}
