package remote

import (
	"fmt"

	"github.com/emersion/go-imap"
)

type expunger interface {
	expunge(uids []uint32) error
	String() string
}

type uidExpungeClient interface {
	UidExpunge(seqSet *imap.SeqSet, ch chan uint32) error
}

// uidPlusExpunger only removes the messages given by UID
type uidPlusExpunger struct {
	client uidExpungeClient
}

func (u *uidPlusExpunger) expunge(uids []uint32) error {
	if len(uids) == 0 {
		return nil
	}
	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)

	out := make(chan uint32)
	done := make(chan error, 1)
	go func() {
		done <- u.client.UidExpunge(seqset, out)
	}()

	// the expunged UIDs are not needed but the channel must be drained
	for range out {
	}

	if err := <-done; err != nil {
		return fmt.Errorf("could not expunge messages: %w", err)
	}
	return nil
}

func (u *uidPlusExpunger) String() string {
	return "uid expunge"
}

type plainExpungeClient interface {
	Expunge(ch chan uint32) error
}

// plainExpunger removes every message flagged \Deleted in the selected mailbox
type plainExpunger struct {
	client plainExpungeClient
}

func (p *plainExpunger) expunge(uids []uint32) error {
	if err := p.client.Expunge(nil); err != nil {
		return fmt.Errorf("could not expunge messages: %w", err)
	}
	return nil
}

func (p *plainExpunger) String() string {
	return "expunge"
}
