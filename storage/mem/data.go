package mem

import (
	"sort"
	"time"
)

type memMessage struct {
	content []byte
	flags   []string
	date    time.Time
}

type memMailbox struct {
	attributes  []string
	uidValidity uint32
	currentUid  uint32
	messages    map[uint32]*memMessage
}

func (m *memMailbox) newMessage(content []byte, flags []string, date time.Time) uint32 {
	m.currentUid++
	m.messages[m.currentUid] = &memMessage{
		content: content,
		flags:   flags,
		date:    date,
	}
	return m.currentUid
}

// uids returns the message UIDs in ascending order, like an IMAP server does
func (m *memMailbox) uids() []uint32 {
	uids := make([]uint32, 0, len(m.messages))
	for uid := range m.messages {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
	return uids
}
