package remote

import (
	"fmt"

	"github.com/creativeprojects/mailpurge/lib"
	"github.com/emersion/go-imap"
)

type trasher interface {
	trash(uid uint32, destination string) error
	flush(uids []uint32) error
	String() string
}

type uidStorer interface {
	UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error
}

// gmailTrasher adds the \Trash label: gmail moves the message out of every other label
type gmailTrasher struct {
	client uidStorer
}

func (g *gmailTrasher) trash(uid uint32, _ string) error {
	seqset := new(imap.SeqSet)
	seqset.AddNum(uid)
	err := g.client.UidStore(seqset, lib.GmailAddLabels, []interface{}{imap.RawString(lib.GmailTrashLabel)}, nil)
	if err != nil {
		return fmt.Errorf("could not add trash label: %w", err)
	}
	return nil
}

func (g *gmailTrasher) flush(uids []uint32) error {
	return nil
}

func (g *gmailTrasher) String() string {
	return "gmail label"
}

type uidMover interface {
	UidMove(seqset *imap.SeqSet, dest string) error
}

type moveTrasher struct {
	client uidMover
}

func (m *moveTrasher) trash(uid uint32, destination string) error {
	seqset := new(imap.SeqSet)
	seqset.AddNum(uid)
	err := m.client.UidMove(seqset, destination)
	if err != nil {
		return fmt.Errorf("could not move message to %q: %w", destination, err)
	}
	return nil
}

func (m *moveTrasher) flush(uids []uint32) error {
	// MOVE removes the source message straight away
	return nil
}

func (m *moveTrasher) String() string {
	return "move"
}

type uidCopier interface {
	uidStorer
	UidCopy(seqset *imap.SeqSet, dest string) error
}

// copyTrasher copies the message and flags the source \Deleted.
// The source messages are expunged by flush.
type copyTrasher struct {
	client   uidCopier
	expunger expunger
}

func (c *copyTrasher) trash(uid uint32, destination string) error {
	seqset := new(imap.SeqSet)
	seqset.AddNum(uid)
	err := c.client.UidCopy(seqset, destination)
	if err != nil {
		return fmt.Errorf("could not copy message to %q: %w", destination, err)
	}
	err = flagDeleted(c.client, uid)
	if err != nil {
		return fmt.Errorf("message copied to %q but not flagged for deletion: %w", destination, err)
	}
	return nil
}

func (c *copyTrasher) flush(uids []uint32) error {
	if len(uids) == 0 {
		return nil
	}
	return c.expunger.expunge(uids)
}

func (c *copyTrasher) String() string {
	return "copy and delete"
}

func flagDeleted(client uidStorer, uid uint32) error {
	seqset := new(imap.SeqSet)
	seqset.AddNum(uid)
	err := client.UidStore(seqset, imap.FormatFlagsOp(imap.AddFlags, true), []interface{}{imap.DeletedFlag}, nil)
	if err != nil {
		return fmt.Errorf("could not set delete flag: %w", err)
	}
	return nil
}
