package test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-imap"
	compress "github.com/emersion/go-imap-compress"
	"github.com/emersion/go-imap/backend"
	"github.com/emersion/go-imap/backend/memory"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-imap/server"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"
)

const (
	Username = "username"
	Password = "password"
)

// Server is an IMAP server keeping its mailboxes in memory.
// The user "username" starts with an INBOX containing one message received now.
type Server struct {
	Addr   string
	server *server.Server
	wg     sync.WaitGroup
}

// StartServer listens on a local port. The server is stopped at the end of the test.
func StartServer(t *testing.T, extensions ...server.Extension) *Server {
	t.Helper()

	// Create a memory backend. The server always advertises MOVE,
	// so the mailboxes need to implement it.
	be := moveBackend{memory.New()}

	// Create a new server
	imapServer := server.New(be)
	// Since we will use this server for testing only, we can allow plain text
	// authentication over non-encrypted connections
	imapServer.AllowInsecureAuth = true
	imapServer.Enable(compress.NewExtension())
	imapServer.Enable(extensions...)

	listener, err := nettest.NewLocalListener("tcp")
	require.NoError(t, err)

	s := &Server{
		Addr:   listener.Addr().String(),
		server: imapServer,
	}
	t.Logf("Starting IMAP server at %s", s.Addr)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = imapServer.Serve(listener)
	}()

	t.Cleanup(func() {
		_ = s.Stop()
	})

	time.Sleep(100 * time.Millisecond)
	return s
}

// Stop closes the listener and waits for the server to finish
func (s *Server) Stop() error {
	err := s.server.Close()
	s.wg.Wait()
	return err
}

func (s *Server) dial(t *testing.T) *client.Client {
	t.Helper()
	c, err := client.Dial(s.Addr)
	require.NoError(t, err)
	require.NoError(t, c.Login(Username, Password))
	return c
}

// Create adds a new mailbox
func (s *Server) Create(t *testing.T, name string) {
	t.Helper()
	c := s.dial(t)
	defer c.Logout()

	require.NoError(t, c.Create(name))
}

// Append stores a message received at date
func (s *Server) Append(t *testing.T, name string, content []byte, date time.Time) {
	t.Helper()
	c := s.dial(t)
	defer c.Logout()

	require.NoError(t, c.Append(name, nil, date, bytes.NewBuffer(content)))
}

// Flags returns the flags of every message in the mailbox, by UID
func (s *Server) Flags(t *testing.T, name string) map[uint32][]string {
	t.Helper()
	c := s.dial(t)
	defer c.Logout()

	status, err := c.Select(name, true)
	require.NoError(t, err)

	flags := make(map[uint32][]string)
	if status.Messages == 0 {
		return flags
	}
	seqset := new(imap.SeqSet)
	seqset.AddRange(1, status.Messages)
	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, []imap.FetchItem{imap.FetchUid, imap.FetchFlags}, messages)
	}()
	for msg := range messages {
		flags[msg.Uid] = msg.Flags
	}
	require.NoError(t, <-done)
	return flags
}

// Count returns the number of messages in the mailbox
func (s *Server) Count(t *testing.T, name string) uint32 {
	t.Helper()
	c := s.dial(t)
	defer c.Logout()

	status, err := c.Select(name, true)
	require.NoError(t, err)
	return status.Messages
}

type moveBackend struct {
	backend.Backend
}

func (b moveBackend) Login(connInfo *imap.ConnInfo, username, password string) (backend.User, error) {
	user, err := b.Backend.Login(connInfo, username, password)
	if err != nil {
		return nil, err
	}
	return moveUser{user}, nil
}

type moveUser struct {
	backend.User
}

func (u moveUser) GetMailbox(name string) (backend.Mailbox, error) {
	mbox, err := u.User.GetMailbox(name)
	if err != nil {
		return nil, err
	}
	return moveMailbox{mbox}, nil
}

// moveMailbox adds MOVE on top of the memory mailbox.
// Messages already flagged as deleted are expunged along with the moved ones.
type moveMailbox struct {
	backend.Mailbox
}

func (m moveMailbox) MoveMessages(uid bool, seqset *imap.SeqSet, dest string) error {
	err := m.CopyMessages(uid, seqset, dest)
	if err != nil {
		return err
	}
	err = m.UpdateMessagesFlags(uid, seqset, imap.AddFlags, []string{imap.DeletedFlag})
	if err != nil {
		return err
	}
	return m.Expunge()
}

var _ backend.MoveMailbox = moveMailbox{}
