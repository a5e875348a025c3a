package remote

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creativeprojects/mailpurge/lib"
	"github.com/creativeprojects/mailpurge/mailbox"
	"github.com/creativeprojects/mailpurge/storage/test"
	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	inbox    = mailbox.Info{Name: "INBOX"}
	june2019 = time.Date(2019, 6, 12, 12, 0, 0, 0, time.UTC)
)

func juneCriteria() mailbox.Criteria {
	return mailbox.DateRange{
		Start: time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2019, 6, 30, 0, 0, 0, 0, time.UTC),
	}.Criteria()
}

func TestImapBackend(t *testing.T) {
	server := test.StartServer(t)
	server.Create(t, "Trash")

	backend, err := NewImap(Config{
		ServerURL:    server.Addr,
		Username:     test.Username,
		Password:     test.Password,
		TrashMailbox: "Trash",
		NoTLS:        true,
		DebugLogger:  lib.NewTestLogger(t, "imap"),
	})
	require.NoError(t, err)

	test.RunTestsOnBackend(t, backend, server)

	assert.IsType(t, &moveTrasher{}, backend.trasher)
	assert.IsType(t, &plainExpunger{}, backend.expunger)

	err = backend.Close()
	assert.NoError(t, err)
}

func TestImapBackendCopyAndExpunge(t *testing.T) {
	server := test.StartServer(t)
	server.Create(t, "Trash")

	backend, err := NewImap(Config{
		ServerURL:    server.Addr,
		Username:     test.Username,
		Password:     test.Password,
		TrashMailbox: "Trash",
		NoTLS:        true,
		DebugLogger:  lib.NewTestLogger(t, "imap"),
	})
	require.NoError(t, err)

	// servers without MOVE: copy, flag as deleted then expunge
	backend.trasher = &copyTrasher{client: backend.client, expunger: backend.expunger}

	test.RunTestsOnBackend(t, backend, server)

	assert.IsType(t, &plainExpunger{}, backend.expunger)

	err = backend.Close()
	assert.NoError(t, err)
}

func TestImapWithCompressionAndBandwidthLimit(t *testing.T) {
	server := test.StartServer(t)

	backend, err := NewImap(Config{
		ServerURL:      server.Addr,
		Username:       test.Username,
		Password:       test.Password,
		NoTLS:          true,
		Compress:       true,
		BandwidthLimit: 1024 * 1024,
	})
	require.NoError(t, err)
	defer backend.Close()

	list, err := backend.ListMailbox()
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, "INBOX", list[0].Name)
}

type recordLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordLogger) Print(a ...any) {
	l.Printf("%s", fmt.Sprint(a...))
}

func (l *recordLogger) Println(a ...any) {
	l.Print(a...)
}

func (l *recordLogger) Printf(format string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, a...))
}

func (l *recordLogger) contains(prefix, text string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.HasPrefix(line, prefix) && strings.Contains(line, text) {
			return true
		}
	}
	return false
}

func TestImapTrace(t *testing.T) {
	server := test.StartServer(t)
	logger := &recordLogger{}

	backend, err := NewImap(Config{
		ServerURL:   server.Addr,
		Username:    test.Username,
		Password:    test.Password,
		NoTLS:       true,
		DebugLogger: logger,
		Trace:       true,
	})
	require.NoError(t, err)

	_, err = backend.ListMailbox()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	assert.True(t, logger.contains("imap: ", "LIST"))
	assert.True(t, logger.contains("imap: ", "LOGOUT"))
}

func TestFetchHeadersDoesNotMarkAsRead(t *testing.T) {
	server := test.StartServer(t)
	server.Append(t, "INBOX", lib.GenerateEmail("from@example.com", "to@example.com", "unread", june2019, 10), june2019)

	backend, err := NewImap(Config{
		ServerURL: server.Addr,
		Username:  test.Username,
		Password:  test.Password,
		NoTLS:     true,
	})
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.SelectMailbox(inbox)
	require.NoError(t, err)
	uids, err := backend.SearchMessages(juneCriteria())
	require.NoError(t, err)
	require.Len(t, uids, 1)

	receiver := make(chan *mailbox.Message, 1)
	require.NoError(t, backend.FetchHeaders(uids, receiver))

	flags := server.Flags(t, "INBOX")
	require.Contains(t, flags, uids[0])
	assert.NotContains(t, flags[uids[0]], imap.SeenFlag)
}

func TestWrongPassword(t *testing.T) {
	server := test.StartServer(t)

	backend, err := NewImap(Config{
		ServerURL: server.Addr,
		Username:  test.Username,
		Password:  "not the password",
		NoTLS:     true,
	})
	assert.Nil(t, backend)
	assert.ErrorIs(t, err, lib.ErrAuthentication)
}

func TestMissingCredentials(t *testing.T) {
	backend, err := NewImap(Config{
		ServerURL: "localhost:993",
		Username:  test.Username,
	})
	assert.Nil(t, backend)
	assert.ErrorIs(t, err, lib.ErrMissingCredentials)
}

func TestConnectionRefused(t *testing.T) {
	server := test.StartServer(t)
	addr := server.Addr
	require.NoError(t, server.Stop())

	backend, err := NewImap(Config{
		ServerURL: addr,
		Username:  test.Username,
		Password:  test.Password,
		NoTLS:     true,
		Timeout:   time.Second,
	})
	assert.Nil(t, backend)
	assert.ErrorIs(t, err, lib.ErrConnection)
}

func TestTrashMailboxDefault(t *testing.T) {
	server := test.StartServer(t)

	backend, err := NewImap(Config{
		ServerURL: server.Addr,
		Username:  test.Username,
		Password:  test.Password,
		NoTLS:     true,
	})
	require.NoError(t, err)
	defer backend.Close()

	// the memory server has no mailbox with the \Trash attribute
	trash, err := backend.TrashMailbox()
	require.NoError(t, err)
	assert.Equal(t, DefaultTrashMailbox, trash.Name)
}

func TestOperationsNeedSelectedMailbox(t *testing.T) {
	server := test.StartServer(t)

	backend, err := NewImap(Config{
		ServerURL: server.Addr,
		Username:  test.Username,
		Password:  test.Password,
		NoTLS:     true,
	})
	require.NoError(t, err)
	defer backend.Close()

	assert.ErrorIs(t, backend.TrashMessage(1), lib.ErrNotSelected)
	assert.ErrorIs(t, backend.FlushTrash([]uint32{1}), lib.ErrNotSelected)
	assert.ErrorIs(t, backend.FlagDeleted(1), lib.ErrNotSelected)
	assert.ErrorIs(t, backend.Expunge([]uint32{1}), lib.ErrNotSelected)
	assert.ErrorIs(t, backend.FetchHeaders([]uint32{1}, make(chan *mailbox.Message, 1)), lib.ErrNotSelected)
}
