package lib

import "errors"

var (
	ErrConnection         = errors.New("connection error")
	ErrAuthentication     = errors.New("authentication failure")
	ErrMissingCredentials = errors.New("missing address or password")
	ErrNotConnected       = errors.New("not connected")
	ErrMailboxNotFound    = errors.New("mailbox not found")
	ErrNotSelected        = errors.New("mailbox not selected")
	ErrNotSelectable      = errors.New("mailbox cannot be selected")
	ErrSelection          = errors.New("cannot select mailbox")
	ErrSearch             = errors.New("search failed")
	ErrFetch              = errors.New("fetch failed")
	ErrStore              = errors.New("store failed")
	ErrExpunge            = errors.New("expunge failed")
	ErrInvalidDate        = errors.New("invalid date format")
	ErrInvalidDateRange   = errors.New("start date must be before end date")
	ErrNotConfirmed       = errors.New("operation not confirmed")
	ErrInterrupted        = errors.New("operation interrupted")
)
