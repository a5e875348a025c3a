package storage

import (
	"github.com/creativeprojects/mailpurge/lib"
	"github.com/creativeprojects/mailpurge/mailbox"
)

// Backend is the mailbox surface needed to find and delete messages.
// All message identifiers are UIDs of the currently selected mailbox.
type Backend interface {
	// DebugLogger sets a logger to send debug information to
	DebugLogger(logger lib.Logger)
	// Close logs out from the server
	Close() error
	ListMailbox() ([]mailbox.Info, error)
	// ExamineMailbox opens the mailbox in read-only mode
	ExamineMailbox(info mailbox.Info) (*mailbox.Status, error)
	// SelectMailbox opens the mailbox in read-write mode
	SelectMailbox(info mailbox.Info) (*mailbox.Status, error)
	UnselectMailbox() error
	// TrashMailbox returns the mailbox receiving trashed messages
	TrashMailbox() (mailbox.Info, error)
	// SearchMessages needs a mailbox to be selected first. An empty criteria returns all the messages.
	SearchMessages(criteria mailbox.Criteria) ([]uint32, error)
	// FetchHeaders sends the header of each message to the channel, then closes it. It never changes the message flags.
	FetchHeaders(uids []uint32, messages chan *mailbox.Message) error
	// TrashMessage moves one message of the selected mailbox to the trash
	TrashMessage(uid uint32) error
	// FlushTrash completes the move of the trashed messages, when the backend needs to
	FlushTrash(uids []uint32) error
	// FlagDeleted marks one message of the selected mailbox for deletion
	FlagDeleted(uid uint32) error
	// Expunge permanently removes the messages flagged for deletion
	Expunge(uids []uint32) error
}
