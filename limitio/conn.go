package limitio

import "net"

// Conn is a net.Conn with a bandwidth limit applied to each direction
type Conn struct {
	net.Conn
	reader *Reader
	writer *Writer
}

// NewConn limits both directions of conn to bytesPerSec. A zero or negative rate returns conn unchanged.
func NewConn(conn net.Conn, bytesPerSec float64, burst int) net.Conn {
	if bytesPerSec <= 0 {
		return conn
	}
	if burst <= 0 {
		burst = 4096
	}
	reader := NewReader(conn)
	reader.SetRateLimit(bytesPerSec, burst)
	writer := NewWriter(conn)
	writer.SetRateLimit(bytesPerSec, burst)
	return &Conn{
		Conn:   conn,
		reader: reader,
		writer: writer,
	}
}

func (c *Conn) Read(p []byte) (int, error) {
	return c.reader.Read(p)
}

func (c *Conn) Write(p []byte) (int, error) {
	return c.writer.Write(p)
}
