package mailbox

import (
	"errors"
	"testing"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	count := Available(0)
	messages, ok := count.Messages()
	assert.True(t, ok)
	assert.True(t, count.IsAvailable())
	assert.Equal(t, uint32(0), messages)
	assert.Equal(t, "0", count.String())
	assert.NoError(t, count.Reason())

	reason := errors.New("no such mailbox")
	count = Unavailable(reason)
	_, ok = count.Messages()
	assert.False(t, ok)
	assert.Equal(t, "", count.String())
	assert.ErrorIs(t, count.Reason(), reason)
}

func TestInfoAttributes(t *testing.T) {
	assert.True(t, Info{Name: "INBOX"}.Selectable())
	assert.False(t, Info{Name: "[Gmail]", Attributes: []string{imap.NoSelectAttr}}.Selectable())
	assert.True(t, Info{Name: "[Gmail]/Trash", Attributes: []string{imap.HasNoChildrenAttr, "\\Trash"}}.IsTrash())
	assert.False(t, Info{Name: "INBOX"}.IsTrash())
}
