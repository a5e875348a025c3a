package storage

import (
	"github.com/creativeprojects/mailpurge/storage/mem"
	"github.com/creativeprojects/mailpurge/storage/remote"
)

// verify interface
var (
	_ Backend = &remote.Imap{}
	_ Backend = &mem.Backend{}
)
