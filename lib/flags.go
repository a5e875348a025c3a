package lib

import "github.com/emersion/go-imap"

const (
	// GmailCapability is advertised by Gmail servers supporting the X-GM-LABELS extension
	GmailCapability = "X-GM-EXT-1"
	// GmailAddLabels is the STORE item adding labels to a message
	GmailAddLabels imap.StoreItem = "+X-GM-LABELS"
	// GmailTrashLabel moves a message to the Gmail trash
	GmailTrashLabel = "\\Trash"
)

func StripRecentFlag(source []string) []string {
	output := make([]string, 0, len(source))
	for _, flag := range source {
		if flag == imap.RecentFlag {
			continue
		}
		output = append(output, flag)
	}
	return output
}

// HasAttribute returns true when the mailbox attribute list contains attr
func HasAttribute(attributes []string, attr string) bool {
	for _, attribute := range attributes {
		if attribute == attr {
			return true
		}
	}
	return false
}

// HasFlag returns true when the message flag list contains flag
func HasFlag(flags []string, flag string) bool {
	return HasAttribute(flags, flag)
}

// SpecialUseTrash is the RFC 6154 attribute flagging the trash mailbox
const SpecialUseTrash = "\\Trash"
