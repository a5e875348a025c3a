package mem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/creativeprojects/mailpurge/lib"
	"github.com/creativeprojects/mailpurge/mailbox"
	"github.com/emersion/go-imap"
)

const (
	Delimiter = "."
	Inbox     = "INBOX"
	Trash     = "Trash"
)

// Backend keeps the mailboxes in memory. It counts the requests it receives
// so tests can verify which operations reached the mailbox.
type Backend struct {
	data      map[string]*memMailbox
	log       lib.Logger
	selected  string
	readOnly  bool
	closed    bool
	requests  int
	mutations int
	failures  map[uint32]error
}

func New() *Backend {
	return NewWithLogger(nil)
}

// NewWithLogger creates a backend containing an empty INBOX and an empty Trash
func NewWithLogger(logger lib.Logger) *Backend {
	if logger == nil {
		logger = &lib.NoLog{}
	}
	backend := &Backend{
		data:     make(map[string]*memMailbox),
		log:      logger,
		failures: make(map[uint32]error),
	}
	backend.CreateMailbox(mailbox.Info{Name: Inbox, Delimiter: Delimiter})
	backend.CreateMailbox(mailbox.Info{Name: Trash, Delimiter: Delimiter, Attributes: []string{lib.SpecialUseTrash}})
	return backend
}

func (m *Backend) DebugLogger(logger lib.Logger) {
	if logger == nil {
		logger = &lib.NoLog{}
	}
	m.log = logger
}

func (m *Backend) Close() error {
	if m.closed {
		return lib.ErrNotConnected
	}
	m.closed = true
	m.selected = ""
	return nil
}

func (m *Backend) ListMailbox() ([]mailbox.Info, error) {
	if err := m.request(); err != nil {
		return nil, err
	}
	list := make([]mailbox.Info, 0, len(m.data))
	for name, mbox := range m.data {
		list = append(list, mailbox.Info{
			Attributes: mbox.attributes,
			Delimiter:  Delimiter,
			Name:       name,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (m *Backend) ExamineMailbox(info mailbox.Info) (*mailbox.Status, error) {
	return m.open(info, true)
}

func (m *Backend) SelectMailbox(info mailbox.Info) (*mailbox.Status, error) {
	return m.open(info, false)
}

func (m *Backend) open(info mailbox.Info, readOnly bool) (*mailbox.Status, error) {
	if err := m.request(); err != nil {
		return nil, err
	}
	m.selected = ""
	mbox, ok := m.data[info.Name]
	if !ok {
		return nil, lib.ErrMailboxNotFound
	}
	if lib.HasAttribute(mbox.attributes, imap.NoSelectAttr) {
		return nil, lib.ErrNotSelectable
	}
	m.selected = info.Name
	m.readOnly = readOnly
	m.log.Printf("Selected mailbox %q (read-only = %v)", info.Name, readOnly)
	return &mailbox.Status{
		Name:        info.Name,
		ReadOnly:    readOnly,
		Messages:    uint32(len(mbox.messages)),
		UidValidity: mbox.uidValidity,
	}, nil
}

func (m *Backend) UnselectMailbox() error {
	if err := m.request(); err != nil {
		return err
	}
	m.selected = ""
	return nil
}

func (m *Backend) TrashMailbox() (mailbox.Info, error) {
	return mailbox.Info{
		Attributes: []string{lib.SpecialUseTrash},
		Delimiter:  Delimiter,
		Name:       Trash,
	}, nil
}

func (m *Backend) SearchMessages(criteria mailbox.Criteria) ([]uint32, error) {
	if err := m.request(); err != nil {
		return nil, err
	}
	if m.selected == "" {
		return nil, lib.ErrNotSelected
	}
	mbox := m.data[m.selected]
	found := make([]uint32, 0)
	for _, uid := range mbox.uids() {
		if criteria.Match(mbox.messages[uid].date) {
			found = append(found, uid)
		}
	}
	return found, nil
}

func (m *Backend) FetchHeaders(uids []uint32, messages chan *mailbox.Message) error {
	defer close(messages)

	if err := m.request(); err != nil {
		return err
	}
	if m.selected == "" {
		return lib.ErrNotSelected
	}
	mbox := m.data[m.selected]
	for _, uid := range uids {
		msg, ok := mbox.messages[uid]
		if !ok {
			continue
		}
		header := msg.content
		if index := bytes.Index(header, []byte("\r\n\r\n")); index >= 0 {
			header = header[:index+4]
		}
		messages <- &mailbox.Message{
			Uid:          uid,
			Flags:        msg.flags,
			InternalDate: msg.date,
			Size:         uint32(len(msg.content)),
			Header:       io.NopCloser(bytes.NewReader(header)),
		}
	}
	return nil
}

func (m *Backend) TrashMessage(uid uint32) error {
	msg, err := m.mutate(uid)
	if err != nil {
		return err
	}
	if m.selected == Trash {
		return nil
	}
	delete(m.data[m.selected].messages, uid)
	m.data[Trash].newMessage(msg.content, msg.flags, msg.date)
	return nil
}

func (m *Backend) FlushTrash(uids []uint32) error {
	// messages are moved straight away
	return nil
}

func (m *Backend) FlagDeleted(uid uint32) error {
	msg, err := m.mutate(uid)
	if err != nil {
		return err
	}
	if !lib.HasFlag(msg.flags, imap.DeletedFlag) {
		msg.flags = append(msg.flags, imap.DeletedFlag)
	}
	return nil
}

func (m *Backend) Expunge(uids []uint32) error {
	if err := m.request(); err != nil {
		return err
	}
	if m.selected == "" {
		return lib.ErrNotSelected
	}
	if m.readOnly {
		return errors.New("mailbox is read-only")
	}
	m.mutations++
	mbox := m.data[m.selected]
	for uid, msg := range mbox.messages {
		if lib.HasFlag(msg.flags, imap.DeletedFlag) {
			delete(mbox.messages, uid)
		}
	}
	return nil
}

func (m *Backend) request() error {
	if m.closed {
		return lib.ErrNotConnected
	}
	m.requests++
	return nil
}

func (m *Backend) mutate(uid uint32) (*memMessage, error) {
	if err := m.request(); err != nil {
		return nil, err
	}
	if m.selected == "" {
		return nil, lib.ErrNotSelected
	}
	if m.readOnly {
		return nil, errors.New("mailbox is read-only")
	}
	m.mutations++
	if err, ok := m.failures[uid]; ok {
		return nil, err
	}
	msg, ok := m.data[m.selected].messages[uid]
	if !ok {
		return nil, fmt.Errorf("no message with uid %d", uid)
	}
	return msg, nil
}

// CreateMailbox adds an empty mailbox (if not existing)
func (m *Backend) CreateMailbox(info mailbox.Info) {
	if _, ok := m.data[info.Name]; ok {
		return
	}
	m.data[info.Name] = &memMailbox{
		attributes:  info.Attributes,
		uidValidity: lib.NewUID(),
		messages:    make(map[uint32]*memMessage),
	}
}

// AppendMessage stores a message received at date. The mailbox is created if needed.
func (m *Backend) AppendMessage(name string, content []byte, flags []string, date time.Time) uint32 {
	m.CreateMailbox(mailbox.Info{Name: name, Delimiter: Delimiter})
	return m.data[name].newMessage(content, flags, date)
}

// GenerateMessages appends count messages received at date, with a numbered subject
func (m *Backend) GenerateMessages(name string, count int, date time.Time) []uint32 {
	uids := make([]uint32, 0, count)
	for i := 1; i <= count; i++ {
		subject := fmt.Sprintf("Message %d", i)
		content := lib.GenerateEmail("sender@example.com", "user@example.com", subject, date, uint32(i))
		uids = append(uids, m.AppendMessage(name, content, nil, date))
	}
	return uids
}

// FailOn makes every change to the message uid return err
func (m *Backend) FailOn(uid uint32, err error) {
	m.failures[uid] = err
}

// Requests is the number of calls received since the backend was created
func (m *Backend) Requests() int {
	return m.requests
}

// Mutations is the number of calls that could change a message
func (m *Backend) Mutations() int {
	return m.mutations
}

// Count returns the number of messages in the mailbox
func (m *Backend) Count(name string) int {
	mbox, ok := m.data[name]
	if !ok {
		return 0
	}
	return len(mbox.messages)
}

// Flags returns the flags of a message, or nil if it doesn't exist
func (m *Backend) Flags(name string, uid uint32) []string {
	mbox, ok := m.data[name]
	if !ok {
		return nil
	}
	msg, ok := mbox.messages[uid]
	if !ok {
		return nil
	}
	return msg.flags
}
