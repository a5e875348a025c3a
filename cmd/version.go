package cmd

import (
	"runtime"

	"github.com/creativeprojects/mailpurge/term"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run:   runVersion,
}

var (
	appVersion = ""
	appCommit  = ""
	appDate    = ""
	appBuiltBy = ""
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

func setApp(version, commit, date, builtBy string) {
	appVersion = version
	appCommit = commit
	appDate = date
	appBuiltBy = builtBy
}

func runVersion(cmd *cobra.Command, args []string) {
	term.Printf("mailpurge %s compiled with %s on %s/%s", appVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if appCommit != "" {
		term.Printf("commit %s built on %s by %s", appCommit, appDate, appBuiltBy)
	}
}
