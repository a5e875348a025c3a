package cmd

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/creativeprojects/mailpurge/cfg"
	"github.com/creativeprojects/mailpurge/cleaner"
	"github.com/creativeprojects/mailpurge/lib"
	"github.com/creativeprojects/mailpurge/mailbox"
	"github.com/creativeprojects/mailpurge/term"
)

var rule = strings.Repeat("=", 60)

type connectFunc func(config *cfg.Config, address, secret string) (*cleaner.Session, error)

func connectRemote(config *cfg.Config, address, secret string) (*cleaner.Session, error) {
	return cleaner.Connect(config, address, secret, debugLogger())
}

// cleanup is the interactive workflow: each step asks the operator before going further
type cleanup struct {
	config  *cfg.Config
	prompt  *term.Prompter
	connect connectFunc

	mu      sync.Mutex
	session *cleaner.Session
	closed  bool
}

func newCleanup(config *cfg.Config, prompt *term.Prompter, connect connectFunc) *cleanup {
	if config == nil {
		config = cfg.New()
	}
	return &cleanup{
		config:  config,
		prompt:  prompt,
		connect: connect,
	}
}

func (c *cleanup) run() error {
	term.Print(rule)
	term.Print("Bulk Email Deleter")
	term.Print(rule)

	session, err := login(c.config, c.prompt, c.connect)
	if err != nil {
		return err
	}
	if !c.setSession(session) {
		_ = session.Close()
		return nil
	}

	if err := displayFolders(session); err != nil {
		term.Errorf("Error listing folders: %s", err)
	}

	term.Print("\n" + rule)
	term.Print("Enter the date range for emails to delete")
	term.Print(rule)

	dates, err := c.readDateRange()
	if err != nil {
		return err
	}
	folder, err := c.readFolder()
	if err != nil {
		return err
	}

	term.Print("\n" + rule)
	ids, err := c.preview(session, folder, dates)
	if err != nil || len(ids) == 0 {
		return err
	}

	term.Print("\n" + rule)
	answer, err := c.prompt.ReadLine("\nDo you want to proceed with deletion? (yes/no): ")
	if err != nil {
		return err
	}
	if !cleaner.Confirmation(answer).AllowsTrash() {
		term.Print("Deletion cancelled.")
		return nil
	}

	moved, err := c.moveToTrash(session, ids)
	if err != nil || !moved {
		return err
	}

	term.Print("\n" + rule)
	answer, err = c.prompt.ReadLine("\nDo you want to permanently delete emails from Trash now? (yes/no): ")
	if err != nil {
		return err
	}
	if !cleaner.Confirmation(answer).AllowsTrash() {
		return nil
	}
	return c.purgeTrash(session)
}

// login asks for the credentials and connects. The app password hint is displayed when the server rejects the login.
func login(config *cfg.Config, prompt *term.Prompter, connect connectFunc) (*cleaner.Session, error) {
	address, err := prompt.ReadLine("\nEnter your email address: ")
	if err != nil {
		return nil, err
	}
	secret, err := prompt.ReadSecret("Enter your app password: ")
	if err != nil {
		return nil, err
	}

	term.Printf("Connecting to %s...", config.Server)
	session, err := connect(config, strings.TrimSpace(address), secret)
	if err != nil {
		if errors.Is(err, lib.ErrAuthentication) {
			displayAppPasswordHint()
		}
		return nil, err
	}
	term.Info("Successfully connected!")
	return session, nil
}

func displayAppPasswordHint() {
	term.Warn("\nNote: Gmail needs an App Password, not your regular password:")
	term.Warn("1. Go to Google Account settings: https://myaccount.google.com/security")
	term.Warn("2. Go to 2 step verification and find 'App Password'")
	term.Warn("3. Use the 16-character App Password instead of your regular password")
}

func (c *cleanup) readDateRange() (mailbox.DateRange, error) {
	start, err := c.prompt.ReadLine("Start date (YYYY-MM-DD): ")
	if err != nil {
		return mailbox.DateRange{}, err
	}
	end, err := c.prompt.ReadLine("End date (YYYY-MM-DD): ")
	if err != nil {
		return mailbox.DateRange{}, err
	}
	return mailbox.ParseDateRange(start, end)
}

func (c *cleanup) readFolder() (string, error) {
	term.Print("\nCommon folders:")
	term.Print("  INBOX - Main inbox")
	term.Print("  [Gmail]/Sent Mail - Sent emails")
	term.Print("  [Gmail]/Spam - Spam folder")
	term.Print("  [Gmail]/Trash - Trash folder")

	folder, err := c.prompt.ReadLine(fmt.Sprintf("\nFolder to search (press Enter for %s): ", c.config.Inbox))
	if err != nil {
		return "", err
	}
	folder = strings.TrimSpace(folder)
	if folder == "" {
		folder = c.config.Inbox
	}
	return folder, nil
}

// preview searches the folder and displays the first messages found. Nothing is changed.
func (c *cleanup) preview(session *cleaner.Session, folder string, dates mailbox.DateRange) ([]uint32, error) {
	term.Printf("\nSelecting folder: %s", folder)
	term.Printf("\nSearching for emails from %s...", dates)
	ids, err := session.SearchByDateRange(folder, dates)
	if err != nil {
		if errors.Is(err, lib.ErrSelection) {
			term.Warn("Try using one of the folders listed above.")
		}
		return nil, err
	}
	if len(ids) == 0 {
		term.Print("No emails found in the specified date range.")
		return ids, nil
	}
	term.Printf("Found %d emails in date range", len(ids))

	limit := c.config.PreviewLimit
	term.Print("\n=== DRY RUN MODE ===")
	term.Printf("Showing first %d emails that would be deleted:", limit)
	summaries, err := session.Preview(ids, limit)
	if err != nil {
		return nil, err
	}
	for index, summary := range summaries {
		term.Printf("\n%d. From: %s", index+1, summary.From)
		term.Printf("   Subject: %s", summary.Subject)
		term.Printf("   Date: %s", summary.Date)
	}
	if len(ids) > limit {
		term.Printf("\n... and %d more emails", len(ids)-limit)
	}
	term.Printf("\nTotal emails that would be deleted: %d", len(ids))
	return ids, nil
}

// moveToTrash returns false when the operator changed their mind
func (c *cleanup) moveToTrash(session *cleaner.Session, ids []uint32) (bool, error) {
	term.Print("\n=== DELETING EMAILS ===")
	term.Printf("This will move %d emails to Trash.", len(ids))
	term.Print("Note: In Gmail, emails in Trash are automatically deleted after 30 days.")
	answer, err := c.prompt.ReadLine(fmt.Sprintf("Are you sure you want to delete %d emails? (yes/no): ", len(ids)))
	if err != nil {
		return false, err
	}

	result, err := session.MoveToTrash(ids, cleaner.Confirmation(answer), newProgresser("Moved %d/%d emails to Trash..."))
	if errors.Is(err, lib.ErrNotConfirmed) {
		term.Print("Deletion cancelled.")
		return false, nil
	}
	displayFailures(result)
	if err != nil {
		return false, err
	}
	term.Infof("\nSuccessfully moved %d emails to Trash!", result.Succeeded)
	term.Print("These emails will be permanently deleted from Trash after 30 days.")
	return true, nil
}

func (c *cleanup) purgeTrash(session *cleaner.Session) error {
	count, err := session.PurgeTrash(true, "", nil)
	if err != nil {
		return err
	}
	term.Printf("\nSelecting folder: %s", session.Folder())
	term.Printf("Total emails in Trash: %d", count.Total)
	if count.Total == 0 {
		term.Print("Trash is empty.")
		return nil
	}

	term.Print("\n=== PERMANENTLY DELETING FROM TRASH ===")
	term.Warn("WARNING: This action CANNOT be undone!")
	answer, err := c.prompt.ReadLine(fmt.Sprintf("Are you ABSOLUTELY sure you want to permanently delete %d emails? (type 'DELETE' to confirm): ", count.Total))
	if err != nil {
		return err
	}

	result, err := session.PurgeTrash(false, cleaner.Confirmation(answer), newProgresser("Deleted %d/%d emails..."))
	if errors.Is(err, lib.ErrNotConfirmed) {
		term.Print("Deletion cancelled.")
		return nil
	}
	displayFailures(result)
	if err != nil {
		return err
	}
	term.Infof("\nPermanently deleted %d emails from Trash!", result.Succeeded)
	return nil
}

func displayFailures(result cleaner.BatchResult) {
	if result.Failed() == 0 {
		return
	}
	term.Warnf("%d emails could not be changed (%s)", result.Failed(), result)
	for _, failure := range result.Failures {
		term.Debugf("  %s", failure.Err)
	}
}

// setSession returns false if the workflow was already closed
func (c *cleanup) setSession(session *cleaner.Session) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	c.session = session
	return true
}

// interrupt stops the batch in progress, if any. It can be called from another goroutine.
func (c *cleanup) interrupt() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		c.session.Interrupt()
	}
}

// close disconnects from the server. It can be called from another goroutine and more than once.
func (c *cleanup) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.session == nil {
		return
	}
	_ = c.session.Close()
	term.Print("\nDisconnected")
}
