package test

import (
	"testing"
	"time"

	"github.com/creativeprojects/mailpurge/lib"
	"github.com/creativeprojects/mailpurge/mailbox"
	"github.com/creativeprojects/mailpurge/storage"
	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const archive = "Archive"

var (
	june10 = time.Date(2019, 6, 10, 9, 30, 0, 0, time.UTC)
	june15 = time.Date(2019, 6, 15, 18, 5, 0, 0, time.UTC)
	june25 = time.Date(2019, 6, 25, 7, 45, 0, 0, time.UTC)
)

// Seeder prepares the content of a backend before running the tests
type Seeder interface {
	Create(t *testing.T, name string)
	Append(t *testing.T, name string, content []byte, date time.Time)
}

// RunTestsOnBackend is the unit tests runner called by the concrete implementations of storage.Backend
func RunTestsOnBackend(t *testing.T, backend storage.Backend, seeder Seeder) {
	require.NotNil(t, backend)

	seeder.Create(t, archive)
	seeder.Append(t, archive, lib.GenerateEmail("first@example.com", "user@example.com", "first", june10, 1), june10)
	seeder.Append(t, archive, lib.GenerateEmail("second@example.com", "user@example.com", "", june15, 2), june15)
	seeder.Append(t, archive, lib.GenerateEmail("third@example.com", "user@example.com", "third", june25, 3), june25)

	juneRange, err := mailbox.NewDateRange(time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2019, 6, 19, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	t.Run("ListMailbox", func(t *testing.T) {
		list, err := backend.ListMailbox()
		require.NoError(t, err)

		assert.True(t, mailboxExists("INBOX", list))
		assert.True(t, mailboxExists(archive, list))
	})

	t.Run("ExamineMailbox", func(t *testing.T) {
		status, err := backend.ExamineMailbox(mailbox.Info{Name: archive})
		require.NoError(t, err)
		assert.Equal(t, archive, status.Name)
		assert.True(t, status.ReadOnly)
		assert.Equal(t, uint32(3), status.Messages)
	})

	t.Run("SelectMailboxDoesNotExist", func(t *testing.T) {
		status, err := backend.SelectMailbox(mailbox.Info{Name: "No mailbox at that name"})
		assert.Nil(t, status)
		// IMAP doesn't have a specific error (it's up to the server implementation)
		require.Error(t, err)
	})

	t.Run("SearchNeedsSelectedMailbox", func(t *testing.T) {
		_, err := backend.SearchMessages(juneRange.Criteria())
		assert.ErrorIs(t, err, lib.ErrNotSelected)
	})

	var found []uint32

	t.Run("SearchByDate", func(t *testing.T) {
		status, err := backend.SelectMailbox(mailbox.Info{Name: archive})
		require.NoError(t, err)
		assert.False(t, status.ReadOnly)

		found, err = backend.SearchMessages(juneRange.Criteria())
		require.NoError(t, err)
		assert.Len(t, found, 2)

		again, err := backend.SearchMessages(juneRange.Criteria())
		require.NoError(t, err)
		assert.ElementsMatch(t, found, again)

		all, err := backend.SearchMessages(mailbox.Criteria{})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("SearchOutOfRange", func(t *testing.T) {
		r, err := mailbox.NewDateRange(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2001, 1, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		uids, err := backend.SearchMessages(r.Criteria())
		require.NoError(t, err)
		assert.NotNil(t, uids)
		assert.Empty(t, uids)
	})

	t.Run("FetchHeaders", func(t *testing.T) {
		require.Len(t, found, 2)
		subjects := make([]string, 0, 2)
		for _, msg := range fetchAll(t, backend, found) {
			summary, err := mailbox.ParseSummary(msg.Uid, msg.Header)
			require.NoError(t, err)
			subjects = append(subjects, summary.Subject)
		}
		assert.ElementsMatch(t, []string{"first", mailbox.NoSubject}, subjects)

		// fetching the header does not mark the message as read
		for _, msg := range fetchAll(t, backend, found) {
			assert.NotContains(t, msg.Flags, imap.SeenFlag)
		}
	})

	t.Run("FetchNothing", func(t *testing.T) {
		assert.Empty(t, fetchAll(t, backend, nil))
	})

	t.Run("TrashMessage", func(t *testing.T) {
		require.NotEmpty(t, found)
		uid := found[0]
		require.NoError(t, backend.TrashMessage(uid))
		require.NoError(t, backend.FlushTrash([]uint32{uid}))

		all, err := backend.SearchMessages(mailbox.Criteria{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
		assert.NotContains(t, all, uid)

		trash, err := backend.TrashMailbox()
		require.NoError(t, err)
		status, err := backend.SelectMailbox(trash)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), status.Messages)
	})

	t.Run("DeleteFromTrash", func(t *testing.T) {
		trash, err := backend.TrashMailbox()
		require.NoError(t, err)
		_, err = backend.SelectMailbox(trash)
		require.NoError(t, err)

		all, err := backend.SearchMessages(mailbox.Criteria{})
		require.NoError(t, err)
		require.Len(t, all, 1)
		for _, uid := range all {
			require.NoError(t, backend.FlagDeleted(uid))
		}
		require.NoError(t, backend.Expunge(all))

		status, err := backend.SelectMailbox(trash)
		require.NoError(t, err)
		assert.Equal(t, uint32(0), status.Messages)
	})

	t.Run("UnselectMailbox", func(t *testing.T) {
		assert.NoError(t, backend.UnselectMailbox())
	})
}

func fetchAll(t *testing.T, backend storage.Backend, uids []uint32) []*mailbox.Message {
	t.Helper()

	receiver := make(chan *mailbox.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- backend.FetchHeaders(uids, receiver)
	}()

	messages := make([]*mailbox.Message, 0, len(uids))
	for msg := range receiver {
		messages = append(messages, msg)
	}
	require.NoError(t, <-done)
	return messages
}

func mailboxExists(name string, in []mailbox.Info) bool {
	for _, mailbox := range in {
		if mailbox.Name == name {
			return true
		}
	}
	return false
}
