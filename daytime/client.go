package daytime

import (
	"context"
	"io"
	"net"
	"strings"
	"time"
)

// MaxReplyBytes bounds a single reply read. The ITS line is around 50
// bytes; anything past 256 is noise from a misbehaving source.
const MaxReplyBytes = 256

// Config holds time-source connection configuration.
type Config struct {
	Server      string        `yaml:"server"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// Defaults applies default values to the config.
func (c *Config) Defaults() {
	if c.Server == "" {
		c.Server = "time.nist.gov:13"
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 10 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
}

// Client fetches one raw reply line from the time source.
type Client interface {
	Fetch(ctx context.Context) (string, error)
}

var _ Client = (*DefaultClient)(nil)

// DefaultClient reads the daytime service over TCP: one connect, one
// bounded read, close. Retry policy belongs to the caller.
type DefaultClient struct {
	server      string
	dialTimeout time.Duration
	readTimeout time.Duration
}

// Params holds configuration for creating a new Client.
type Params struct {
	Config Config
}

// New creates a new DefaultClient with the given parameters.
func New(p Params) *DefaultClient {
	p.Config.Defaults()

	return &DefaultClient{
		server:      p.Config.Server,
		dialTimeout: p.Config.DialTimeout,
		readTimeout: p.Config.ReadTimeout,
	}
}

// Server returns the configured source address.
func (c *DefaultClient) Server() string { return c.server }

// Fetch performs one connect-read-close cycle against the source and
// returns the trimmed reply text. Invalid byte sequences are replaced
// rather than rejected; format validation happens in Parse.
func (c *DefaultClient) Fetch(ctx context.Context) (string, error) {
	dialer := net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.server)
	if err != nil {
		return "", &NetworkError{Op: "connect", Server: c.server, Err: err}
	}
	defer conn.Close()

	if err = conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return "", &NetworkError{Op: "read", Server: c.server, Err: err}
	}

	buf := make([]byte, MaxReplyBytes)
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &NetworkError{Op: "read", Server: c.server, Err: err}
		}
	}

	reply := strings.ToValidUTF8(string(buf[:total]), "�")
	return strings.TrimSpace(reply), nil
}
