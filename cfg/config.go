package cfg

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServer           = "imap.gmail.com:993"
	DefaultInbox            = "INBOX"
	DefaultPreviewLimit     = 10
	DefaultProgressInterval = 100
	DefaultTimeout          = 30 * time.Second
)

// Config holds everything but the credentials: the address and password are always typed in
type Config struct {
	Server string `yaml:"server"`
	Inbox  string `yaml:"inbox"`

	// Trash is detected from the server when empty
	Trash               string        `yaml:"trash"`
	PreviewLimit        int           `yaml:"previewLimit"`
	ProgressInterval    int           `yaml:"progressInterval"`
	Compress            bool          `yaml:"compress"`
	BandwidthLimit      float64       `yaml:"bandwidthLimit"`
	SkipTLSVerification bool          `yaml:"skipTLSVerification"`
	Timeout             time.Duration `yaml:"timeout"`

	// Trace sends the IMAP conversation to the debug log. It can only be set from the command line.
	Trace bool `yaml:"-"`
}

// New returns a configuration with the default values
func New() *Config {
	return &Config{
		Server:           DefaultServer,
		Inbox:            DefaultInbox,
		PreviewLimit:     DefaultPreviewLimit,
		ProgressInterval: DefaultProgressInterval,
		Timeout:          DefaultTimeout,
	}
}

// LoadFromFile loads the configuration from the file
func LoadFromFile(fileName string) (*Config, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Load(file)
}

// Load reads a YAML configuration. The values missing from the file keep their default.
func Load(reader io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	config := New()
	err := decoder.Decode(config)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("invalid configuration: server cannot be empty")
	}
	if c.Inbox == "" {
		c.Inbox = DefaultInbox
	}
	if c.PreviewLimit < 1 {
		return fmt.Errorf("invalid configuration: previewLimit must be at least 1 (found %d)", c.PreviewLimit)
	}
	if c.ProgressInterval < 1 {
		return fmt.Errorf("invalid configuration: progressInterval must be at least 1 (found %d)", c.ProgressInterval)
	}
	if c.BandwidthLimit < 0 {
		return fmt.Errorf("invalid configuration: bandwidthLimit cannot be negative")
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}
