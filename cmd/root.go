package cmd

import (
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/creativeprojects/mailpurge/cfg"
	"github.com/creativeprojects/mailpurge/term"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mailpurge",
	Short:         "Delete the emails received between two dates",
	Long:          "\nSearch a mailbox folder for the emails received between two dates, preview them,\nmove them to the trash and optionally empty the trash.",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runClean,
}

func init() {
	cobra.OnInitialize(initConfig, initLog)
	flag := rootCmd.PersistentFlags()
	flag.StringVarP(&global.configFile, "config", "c", defaultConfigFile, "configuration file")
	flag.BoolVarP(&global.quiet, "quiet", "q", false, "only display warnings and errors")
	flag.BoolVarP(&global.verbose, "verbose", "v", false, "display debugging information")
	flag.BoolVar(&global.trace, "trace", false, "display the IMAP conversation (including your password)")
	flag.StringVar(&global.server, "server", "", "IMAP server address host:port (default "+cfg.DefaultServer+")")
}

func initConfig() {
	var err error
	config, err = cfg.LoadFromFile(global.configFile)
	if errors.Is(err, fs.ErrNotExist) && !rootCmd.PersistentFlags().Changed("config") {
		// the configuration file is optional
		config, err = cfg.New(), nil
	}
	if err != nil {
		term.Errorf("cannot open or read configuration file: %s", err)
		os.Exit(1)
	}
	if global.server != "" {
		config.Server = global.server
	}
	config.Trace = global.trace
}

func initLog() {
	switch {
	case global.verbose:
		term.SetLevel(term.LevelDebug)
	case global.quiet:
		term.SetLevel(term.LevelWarn)
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	c := newCleanup(config, term.NewPrompter(os.Stdin, term.GetOutput()), connectRemote)
	defer c.close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-signals:
			term.Print("\n\nOperation cancelled by user")
			c.interrupt()
			c.close()
			os.Exit(130)
		case <-done:
		}
	}()

	return c.run()
}

func Execute(version, commit, date, builtBy string) {
	setApp(version, commit, date, builtBy)
	if err := rootCmd.Execute(); err != nil {
		term.Error(err)
		os.Exit(1)
	}
}
