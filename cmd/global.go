package cmd

import (
	"log"

	"github.com/creativeprojects/mailpurge/cfg"
	"github.com/creativeprojects/mailpurge/lib"
)

const defaultConfigFile = "mailpurge.yaml"

type GlobalFlags struct {
	configFile string
	quiet      bool
	verbose    bool
	trace      bool
	server     string
}

var (
	global GlobalFlags
	config *cfg.Config
)

// debugLogger returns the logger receiving the IMAP debug information, or nil
func debugLogger() lib.Logger {
	if global.verbose || global.trace {
		return log.Default()
	}
	return nil
}
