package cmd

import (
	"os"
	"strings"

	"github.com/creativeprojects/mailpurge/mailbox"
	"github.com/creativeprojects/mailpurge/term"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Display list of folders with their number of messages",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	session, err := login(config, term.NewPrompter(os.Stdin, term.GetOutput()), connectRemote)
	if err != nil {
		return err
	}
	defer session.Close()

	return displayFolders(session)
}

type folderLister interface {
	ListFolders() ([]mailbox.FolderEntry, error)
}

func displayFolders(session folderLister) error {
	folders, err := session.ListFolders()
	if err != nil {
		return err
	}
	table, err := folderTable(folders)
	if err != nil {
		return err
	}
	term.Print("\nAvailable folders/labels:")
	term.Print(table)
	return nil
}

func folderTable(folders []mailbox.FolderEntry) (string, error) {
	table := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Folder", "Messages", "Attributes"},
	})
	for _, folder := range folders {
		messages := folder.Count.String()
		if !folder.Count.IsAvailable() {
			messages = "-"
		}
		table.Data = append(table.Data, []string{folder.Info.Name, messages, displayFlags(folder.Info.Attributes)})
	}
	return table.Srender()
}

func displayFlags(source []string) string {
	flags := make([]string, len(source))
	for i, flag := range source {
		flags[i] = strings.TrimPrefix(flag, "\\")
	}
	return strings.Join(flags, ", ")
}
