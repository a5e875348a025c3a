package cleaner

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/creativeprojects/mailpurge/cfg"
	"github.com/creativeprojects/mailpurge/lib"
	"github.com/creativeprojects/mailpurge/mailbox"
	"github.com/creativeprojects/mailpurge/storage"
	"github.com/creativeprojects/mailpurge/storage/remote"
)

type Options struct {
	// Inbox is searched when no folder is given
	Inbox            string
	PreviewLimit     int
	ProgressInterval int
	DebugLogger      lib.Logger
}

// Session is one authenticated connection to a mailbox, used to find and delete messages.
// Its methods can be called from different goroutines: one operation runs at a time.
type Session struct {
	backend storage.Backend
	options Options
	log     lib.Logger
	account string
	host    string

	interrupted atomic.Bool

	// mu guards state and folder, and serializes the calls to the backend
	mu     sync.Mutex
	state  State
	folder string
}

// Connect logs in to the server and returns a session ready to list the folders.
// No session is returned when the connection or the login fails.
func Connect(config *cfg.Config, address, secret string, logger lib.Logger) (*Session, error) {
	if config == nil {
		config = cfg.New()
	}
	backend, err := remote.NewImap(remote.Config{
		ServerURL:           config.Server,
		Username:            address,
		Password:            secret,
		TrashMailbox:        config.Trash,
		DebugLogger:         logger,
		SkipTLSVerification: config.SkipTLSVerification,
		Compress:            config.Compress,
		BandwidthLimit:      config.BandwidthLimit,
		Timeout:             config.Timeout,
		Trace:               config.Trace,
	})
	if err != nil {
		return nil, err
	}
	session := New(backend, Options{
		Inbox:            config.Inbox,
		PreviewLimit:     config.PreviewLimit,
		ProgressInterval: config.ProgressInterval,
		DebugLogger:      logger,
	})
	session.account = address
	session.host = config.Server
	return session, nil
}

// New creates a session on a backend already logged in
func New(backend storage.Backend, options Options) *Session {
	if options.Inbox == "" {
		options.Inbox = cfg.DefaultInbox
	}
	if options.PreviewLimit < 1 {
		options.PreviewLimit = cfg.DefaultPreviewLimit
	}
	if options.ProgressInterval < 1 {
		options.ProgressInterval = cfg.DefaultProgressInterval
	}
	log := options.DebugLogger
	if log == nil {
		log = &lib.NoLog{}
	}
	return &Session{
		backend: backend,
		options: options,
		log:     log,
		state:   Connected,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) Account() string {
	return s.account
}

func (s *Session) Host() string {
	return s.host
}

// Folder is the name of the folder selected by the last search or purge
func (s *Session) Folder() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.folder
}

// Interrupt stops the batch operation in progress after the current message.
// The messages already processed are still flushed or expunged, and the operation returns lib.ErrInterrupted.
// Interrupt does not wait for the operation to stop: Close does.
func (s *Session) Interrupt() {
	s.interrupted.Store(true)
}

// ListFolders returns every folder with its message count. A folder that cannot be
// examined is still listed, with the reason its count is unavailable.
func (s *Session) ListFolders() ([]mailbox.FolderEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Disconnected {
		return nil, lib.ErrNotConnected
	}
	folders, err := s.backend.ListMailbox()
	if err != nil {
		return nil, fmt.Errorf("cannot list folders: %w", err)
	}
	entries := make([]mailbox.FolderEntry, 0, len(folders))
	for _, folder := range folders {
		entries = append(entries, mailbox.FolderEntry{
			Info:  folder,
			Count: s.count(folder),
		})
	}
	// examining a folder replaced the read-write selection
	s.folder = ""
	s.state = Connected
	return entries, nil
}

func (s *Session) count(folder mailbox.Info) mailbox.Count {
	if !folder.Selectable() {
		return mailbox.Unavailable(lib.ErrNotSelectable)
	}
	status, err := s.backend.ExamineMailbox(folder)
	if err != nil {
		s.log.Printf("cannot examine folder %q: %s", folder.Name, err)
		return mailbox.Unavailable(fmt.Errorf("%w %q: %w", lib.ErrSelection, folder.Name, err))
	}
	return mailbox.Available(status.Messages)
}

// SearchByDateRange selects the folder and returns the UIDs of the messages received
// between the first and the last day of the range, both included.
// An empty folder name searches the inbox.
func (s *Session) SearchByDateRange(folder string, dates mailbox.DateRange) ([]uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Disconnected {
		return nil, lib.ErrNotConnected
	}
	if err := dates.Validate(); err != nil {
		return nil, err
	}
	if folder == "" {
		folder = s.options.Inbox
	}
	if err := s.selectFolder(mailbox.Info{Name: folder}); err != nil {
		return nil, err
	}
	s.log.Printf("searching folder %q for messages from %s", folder, dates)
	uids, err := s.backend.SearchMessages(dates.Criteria())
	if err != nil {
		return nil, fmt.Errorf("%w in %q: %w", lib.ErrSearch, folder, err)
	}
	s.state = Searched
	return uids, nil
}

func (s *Session) selectFolder(folder mailbox.Info) error {
	s.folder = ""
	_, err := s.backend.SelectMailbox(folder)
	if err != nil {
		s.state = Connected
		return fmt.Errorf("%w %q: %w", lib.ErrSelection, folder.Name, err)
	}
	s.folder = folder.Name
	s.state = FolderSelected
	return nil
}

// Preview returns the summary of the first messages, in the order of ids.
// A limit of zero uses the configured preview limit. The messages are not marked as read.
func (s *Session) Preview(ids []uint32, limit int) ([]mailbox.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Disconnected {
		return nil, lib.ErrNotConnected
	}
	if s.folder == "" {
		return nil, lib.ErrNotSelected
	}
	if limit < 1 {
		limit = s.options.PreviewLimit
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	if len(ids) == 0 {
		return []mailbox.Summary{}, nil
	}

	receiver := make(chan *mailbox.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- s.backend.FetchHeaders(ids, receiver)
	}()

	byUid := make(map[uint32]mailbox.Summary, len(ids))
	for msg := range receiver {
		summary, err := mailbox.ParseSummary(msg.Uid, msg.Header)
		_ = msg.Header.Close()
		if err != nil {
			s.log.Print(err)
			summary = mailbox.Summary{
				Uid:     msg.Uid,
				From:    mailbox.Unknown,
				Subject: mailbox.NoSubject,
				Date:    mailbox.Unknown,
			}
		}
		byUid[msg.Uid] = summary
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("%w: %w", lib.ErrFetch, err)
	}

	summaries := make([]mailbox.Summary, 0, len(ids))
	for _, uid := range ids {
		if summary, ok := byUid[uid]; ok {
			summaries = append(summaries, summary)
		}
	}
	s.state = Previewed
	return summaries, nil
}

// MoveToTrash moves the messages of the selected folder to the trash.
// Nothing is changed unless the operator answered "yes".
func (s *Session) MoveToTrash(ids []uint32, confirm Confirmation, progress storage.Progresser) (BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := BatchResult{Total: len(ids)}
	if s.state == Disconnected {
		return result, lib.ErrNotConnected
	}
	if s.folder == "" {
		return result, lib.ErrNotSelected
	}
	if !confirm.AllowsTrash() {
		return result, lib.ErrNotConfirmed
	}
	if len(ids) == 0 {
		return result, nil
	}

	moved, err := s.apply(ids, s.backend.TrashMessage, &result, progress)
	s.state = Mutated
	if len(moved) > 0 {
		if err := s.backend.FlushTrash(moved); err != nil {
			return result, fmt.Errorf("%w: %w", lib.ErrExpunge, err)
		}
	}
	return result, err
}

// PurgeTrash permanently deletes every message in the trash.
// An empty trash needs no confirmation. A dry run only counts the messages.
// Otherwise nothing is deleted unless the operator typed "DELETE".
func (s *Session) PurgeTrash(dryRun bool, confirm Confirmation, progress storage.Progresser) (BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Disconnected {
		return BatchResult{}, lib.ErrNotConnected
	}
	trash, err := s.backend.TrashMailbox()
	if err != nil {
		return BatchResult{}, fmt.Errorf("%w: %w", lib.ErrMailboxNotFound, err)
	}
	if err := s.selectFolder(trash); err != nil {
		return BatchResult{}, err
	}
	ids, err := s.backend.SearchMessages(mailbox.Criteria{})
	if err != nil {
		return BatchResult{}, fmt.Errorf("%w in %q: %w", lib.ErrSearch, trash.Name, err)
	}
	s.state = Searched

	result := BatchResult{Total: len(ids)}
	if len(ids) == 0 || dryRun {
		return result, nil
	}
	if !confirm.AllowsPurge() {
		return result, lib.ErrNotConfirmed
	}

	flagged, err := s.apply(ids, s.backend.FlagDeleted, &result, progress)
	s.state = Mutated
	if len(flagged) > 0 {
		if err := s.backend.Expunge(flagged); err != nil {
			return result, fmt.Errorf("%w: %w", lib.ErrExpunge, err)
		}
	}
	return result, err
}

// apply runs change on each message and returns the UIDs changed successfully.
// It stops early with lib.ErrInterrupted when the session is interrupted.
func (s *Session) apply(ids []uint32, change func(uid uint32) error, result *BatchResult, progress storage.Progresser) ([]uint32, error) {
	done := make([]uint32, 0, len(ids))
	for index, uid := range ids {
		if s.interrupted.Load() {
			s.log.Printf("interrupted after %d/%d messages", index, len(ids))
			return done, lib.ErrInterrupted
		}
		if err := change(uid); err != nil {
			s.log.Printf("message %d: %s", uid, err)
			result.Failures = append(result.Failures, Failure{
				Uid: uid,
				Err: fmt.Errorf("%w on message %d: %w", lib.ErrStore, uid, err),
			})
		} else {
			result.Succeeded++
			done = append(done, uid)
		}
		count := index + 1
		if progress != nil && (count%s.options.ProgressInterval == 0 || count == len(ids)) {
			progress.Progress(count, len(ids))
		}
	}
	return done, nil
}

// Close unselects the folder and logs out. Errors are only logged. Close can be called more than once.
// It waits for the operation in progress: call Interrupt first to cut a batch short.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Disconnected {
		return nil
	}
	if s.folder != "" {
		if err := s.backend.UnselectMailbox(); err != nil {
			s.log.Printf("cannot unselect folder %q: %s", s.folder, err)
		}
	}
	if err := s.backend.Close(); err != nil {
		s.log.Printf("cannot close connection: %s", err)
	}
	s.folder = ""
	s.state = Disconnected
	return nil
}
