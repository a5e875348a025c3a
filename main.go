package main

import "github.com/creativeprojects/mailpurge/cmd"

// set at build time with -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = ""
	date    = ""
	builtBy = ""
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
