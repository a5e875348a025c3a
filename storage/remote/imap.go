package remote

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/creativeprojects/mailpurge/lib"
	"github.com/creativeprojects/mailpurge/limitio"
	"github.com/creativeprojects/mailpurge/mailbox"
	"github.com/emersion/go-imap"
	compress "github.com/emersion/go-imap-compress"
	move "github.com/emersion/go-imap-move"
	uidplus "github.com/emersion/go-imap-uidplus"
	"github.com/emersion/go-imap/client"
)

// DefaultTrashMailbox is used when the server doesn't flag a mailbox as the trash
const DefaultTrashMailbox = "[Gmail]/Trash"

const defaultTimeout = 30 * time.Second

type Config struct {
	ServerURL string
	Username  string
	Password  string
	// TrashMailbox overrides the mailbox detected from the SPECIAL-USE attribute
	TrashMailbox        string
	DebugLogger         lib.Logger
	NoTLS               bool
	SkipTLSVerification bool
	// Compress enables COMPRESS=DEFLATE when the server supports it
	Compress bool
	// BandwidthLimit in bytes per second, zero for no limit
	BandwidthLimit float64
	// Trace sends the raw IMAP conversation to the debug logger (including the LOGIN command)
	Trace   bool
	Timeout time.Duration
}

type Imap struct {
	client   *client.Client
	log      lib.Logger
	trasher  trasher
	expunger expunger
	selected *mailbox.Status
	trash    string
	detected string
}

// NewImap connects and logs in. A failure to reach the server wraps lib.ErrConnection,
// a rejected login wraps lib.ErrAuthentication.
func NewImap(cfg Config) (*Imap, error) {
	log := cfg.DebugLogger
	if log == nil {
		log = &lib.NoLog{}
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("%w: missing server address", lib.ErrConnection)
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, lib.ErrMissingCredentials
	}

	log.Printf("Connecting to server %s...", cfg.ServerURL)
	imapClient, err := dial(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot connect to server %s: %w", lib.ErrConnection, cfg.ServerURL, err)
	}
	log.Print("Connected")
	if cfg.Trace {
		imapClient.SetDebug(lib.NewLogWriter(log, "imap: "))
	}

	if err := imapClient.Login(cfg.Username, cfg.Password); err != nil {
		_ = imapClient.Logout()
		return nil, fmt.Errorf("%w: %w", lib.ErrAuthentication, err)
	}
	log.Printf("Logged in as %s", cfg.Username)

	if caps, err := imapClient.Capability(); err == nil {
		log.Printf("capabilities: %+v", caps)
	}

	if cfg.Compress {
		enableCompression(imapClient, log)
	}

	remote := &Imap{
		client: imapClient,
		log:    log,
		trash:  cfg.TrashMailbox,
	}
	remote.expunger = remote.chooseExpunger()
	remote.trasher = remote.chooseTrasher()
	log.Printf("Messages are trashed using %s, deleted using %s", remote.trasher, remote.expunger)
	return remote, nil
}

func dial(cfg Config) (*client.Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	dialer := &net.Dialer{Timeout: timeout}

	var conn net.Conn
	var err error
	if cfg.NoTLS {
		conn, err = dialer.Dial("tcp", cfg.ServerURL)
	} else {
		host, _, splitErr := net.SplitHostPort(cfg.ServerURL)
		if splitErr != nil {
			return nil, splitErr
		}
		tlsConfig := &tls.Config{
			ServerName: host,
			MinVersion: tls.VersionTLS12,
		}
		if cfg.SkipTLSVerification {
			tlsConfig.InsecureSkipVerify = true
		}
		conn, err = tls.DialWithDialer(dialer, "tcp", cfg.ServerURL, tlsConfig)
	}
	if err != nil {
		return nil, err
	}
	imapClient, err := client.New(limitio.NewConn(conn, cfg.BandwidthLimit, 0))
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	imapClient.Timeout = timeout
	return imapClient, nil
}

func enableCompression(imapClient *client.Client, log lib.Logger) {
	compressClient := compress.NewClient(imapClient)
	supported, err := compressClient.SupportCompress(compress.Deflate)
	if err != nil || !supported {
		log.Print("IMAP server does NOT support COMPRESS=DEFLATE extension")
		return
	}
	if err := compressClient.Compress(compress.Deflate); err != nil {
		log.Printf("cannot enable compression: %s", err)
		return
	}
	log.Print("Compression enabled")
}

func (i *Imap) chooseExpunger() expunger {
	uidExt := uidplus.NewClient(i.client)
	supported, err := uidExt.SupportUidPlus()
	if err != nil || !supported {
		i.log.Print("IMAP server does NOT support UIDPLUS extension")
		return &plainExpunger{client: i.client}
	}
	return &uidPlusExpunger{client: uidExt}
}

func (i *Imap) chooseTrasher() trasher {
	if gmail, err := i.client.Support(lib.GmailCapability); err == nil && gmail {
		return &gmailTrasher{client: i.client}
	}
	moveExt := move.NewClient(i.client)
	if supported, err := moveExt.SupportMove(); err == nil && supported {
		return &moveTrasher{client: moveExt}
	}
	i.log.Print("IMAP server does NOT support MOVE extension")
	return &copyTrasher{client: i.client, expunger: i.expunger}
}

func (i *Imap) DebugLogger(logger lib.Logger) {
	if logger == nil {
		logger = &lib.NoLog{}
	}
	i.log = logger
}

func (i *Imap) Close() error {
	i.log.Print("Closing connection")
	i.selected = nil
	return i.client.Logout()
}

func (i *Imap) ListMailbox() ([]mailbox.Info, error) {
	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- i.client.List("", "*", mailboxes)
	}()

	i.log.Print("Listing mailboxes:")
	info := make([]mailbox.Info, 0, 10)
	for m := range mailboxes {
		i.log.Printf("* %q: %+v (delimiter = %q)", m.Name, m.Attributes, m.Delimiter)
		entry := mailbox.Info{
			Attributes: m.Attributes,
			Delimiter:  m.Delimiter,
			Name:       m.Name,
		}
		if i.detected == "" && entry.IsTrash() {
			i.detected = entry.Name
		}
		info = append(info, entry)
	}

	if err := <-done; err != nil {
		return nil, err
	}
	return info, nil
}

func (i *Imap) ExamineMailbox(info mailbox.Info) (*mailbox.Status, error) {
	return i.open(info, true)
}

func (i *Imap) SelectMailbox(info mailbox.Info) (*mailbox.Status, error) {
	return i.open(info, false)
}

func (i *Imap) open(info mailbox.Info, readOnly bool) (*mailbox.Status, error) {
	i.log.Printf("Selecting mailbox %q (read-only = %v)", info.Name, readOnly)
	status, err := i.client.Select(info.Name, readOnly)
	if err != nil {
		i.selected = nil
		return nil, err
	}
	i.selected = &mailbox.Status{
		Name:           status.Name,
		ReadOnly:       status.ReadOnly,
		Flags:          status.Flags,
		PermanentFlags: status.PermanentFlags,
		Messages:       status.Messages,
		Unseen:         status.Unseen,
		UidValidity:    status.UidValidity,
	}
	return i.selected, nil
}

func (i *Imap) UnselectMailbox() error {
	i.selected = nil
	return i.client.Unselect()
}

func (i *Imap) TrashMailbox() (mailbox.Info, error) {
	if i.trash != "" {
		return mailbox.Info{Name: i.trash}, nil
	}
	if i.detected == "" {
		if _, err := i.ListMailbox(); err != nil {
			return mailbox.Info{}, err
		}
	}
	if i.detected == "" {
		i.detected = DefaultTrashMailbox
	}
	return mailbox.Info{Name: i.detected, Attributes: []string{lib.SpecialUseTrash}}, nil
}

func (i *Imap) SearchMessages(criteria mailbox.Criteria) ([]uint32, error) {
	if i.selected == nil {
		return nil, lib.ErrNotSelected
	}
	search := imap.NewSearchCriteria()
	search.Since = criteria.Since
	search.Before = criteria.Before
	i.log.Printf("searching for emails since %s and before %s", criteria.Since, criteria.Before)
	uids, err := i.client.UidSearch(search)
	if err != nil {
		return nil, err
	}
	if uids == nil {
		uids = make([]uint32, 0)
	}
	return uids, nil
}

func (i *Imap) FetchHeaders(uids []uint32, messages chan *mailbox.Message) error {
	defer close(messages)

	if i.selected == nil {
		return lib.ErrNotSelected
	}
	if len(uids) == 0 {
		return nil
	}
	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)

	section := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{
			Specifier: imap.HeaderSpecifier,
		},
		Peek: true,
	}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchFlags, imap.FetchUid, imap.FetchInternalDate, imap.FetchRFC822Size}
	i.log.Printf("items: %+v", items)

	receiver := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- i.client.UidFetch(seqset, items, receiver)
	}()

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for msg := range receiver {
			i.log.Printf("Received IMAP message uid=%d flags=%+v date=%q", msg.Uid, msg.Flags, msg.InternalDate)
			body := msg.GetBody(section)
			if body == nil {
				i.log.Printf("no header section received for message uid=%d", msg.Uid)
				continue
			}
			messages <- &mailbox.Message{
				Uid:          msg.Uid,
				Flags:        lib.StripRecentFlag(msg.Flags),
				InternalDate: msg.InternalDate,
				Size:         msg.Size,
				Header:       io.NopCloser(body),
			}
		}
	}()
	err := <-done
	wg.Wait()
	return err
}

func (i *Imap) TrashMessage(uid uint32) error {
	if i.selected == nil {
		return lib.ErrNotSelected
	}
	trash, err := i.TrashMailbox()
	if err != nil {
		return err
	}
	return i.trasher.trash(uid, trash.Name)
}

func (i *Imap) FlushTrash(uids []uint32) error {
	if i.selected == nil {
		return lib.ErrNotSelected
	}
	return i.trasher.flush(uids)
}

func (i *Imap) FlagDeleted(uid uint32) error {
	if i.selected == nil {
		return lib.ErrNotSelected
	}
	return flagDeleted(i.client, uid)
}

func (i *Imap) Expunge(uids []uint32) error {
	if i.selected == nil {
		return lib.ErrNotSelected
	}
	return i.expunger.expunge(uids)
}
