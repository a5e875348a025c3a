package cleaner

import "strings"

// Confirmation is the answer typed by the operator before a destructive operation.
// It is compared as typed, without trimming.
type Confirmation string

const (
	ConfirmTrash Confirmation = "yes"
	ConfirmPurge Confirmation = "DELETE"
)

// AllowsTrash accepts "yes" in any case
func (c Confirmation) AllowsTrash() bool {
	return strings.EqualFold(string(c), string(ConfirmTrash))
}

// AllowsPurge only accepts "DELETE" in capital letters
func (c Confirmation) AllowsPurge() bool {
	return c == ConfirmPurge
}
