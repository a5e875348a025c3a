package mailbox

import (
	"github.com/creativeprojects/mailpurge/lib"
	"github.com/emersion/go-imap"
)

type Info struct {
	// The mailbox attributes.
	Attributes []string
	// The server's path separator.
	Delimiter string
	// The mailbox name.
	Name string
}

// Selectable is false when the server flagged the mailbox \Noselect
func (i Info) Selectable() bool {
	return !lib.HasAttribute(i.Attributes, imap.NoSelectAttr)
}

// IsTrash returns true when the server flagged the mailbox as the trash (SPECIAL-USE)
func (i Info) IsTrash() bool {
	return lib.HasAttribute(i.Attributes, lib.SpecialUseTrash)
}
