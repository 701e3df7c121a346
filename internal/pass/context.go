package pass

import (
	"io"
	"net"

	"github.com/jsheehan/pass/internal/bufpool"
	"github.com/jsheehan/pass/internal/xerrors"
)

// Context owns the socket and buffers for one acquisition stream: a read
// buffer sized to one expected block, the reassembler's scratch/header
// buffers (when the stream carries frame headers), and the current
// payload. It is driven exclusively by the single ingest task that owns
// it; see the ingest package for the driver loop.
type Context struct {
	SensorCount  int
	ChannelCount int
	SampleRate   int
	HasHeader    bool
	SequenceID   uint32

	conn net.Conn
	pool *bufpool.Pool

	readBuf     []byte
	reassembler *Reassembler
	ownPayload  []byte // used only when HasHeader is false
}

// NewContext allocates a context for the given acquisition geometry. The
// read buffer (and, for headerless streams, the payload buffer) is drawn
// from a pool sized exactly to this context's two buffer classes (expected
// block, expected payload). Each context builds its own pool, so a newly
// created context allocates fresh buffers; they are not shared with
// earlier contexts.
func NewContext(sensorCount, channelCount, sampleRate int, hasHeader bool) *Context {
	expectedPayload := sensorCount * channelCount * sampleRate * 2
	headerSize := 0
	if hasHeader {
		headerSize = HeaderSize
	}
	expectedBlock := expectedPayload + headerSize

	pool := bufpool.NewWithClasses([]int{expectedBlock, expectedPayload})

	c := &Context{
		SensorCount:  sensorCount,
		ChannelCount: channelCount,
		SampleRate:   sampleRate,
		HasHeader:    hasHeader,
		pool:         pool,
		readBuf:      pool.Get(expectedBlock),
	}
	if hasHeader {
		c.reassembler = NewReassembler(expectedPayload)
	} else {
		c.ownPayload = pool.Get(expectedPayload)
	}
	return c
}

// Payload returns the current frame's payload bytes, valid after a
// successful Read.
func (c *Context) Payload() []byte {
	if c.HasHeader {
		return c.reassembler.Payload
	}
	return c.ownPayload
}

// Connect dials the acquisition source and stores the resulting connection.
func (c *Context) Connect(host string, port int) error {
	conn, err := Dial(host, port)
	if err != nil {
		return err
	}
	c.conn = conn
	return nil
}

// Close releases the socket and returns buffers to the pool.
func (c *Context) Close() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.pool.Put(c.readBuf)
	if !c.HasHeader {
		c.pool.Put(c.ownPayload)
	}
}

// Read fills the read buffer with exactly one expected block via a
// short-read retry loop, then either reassembles it (HasHeader) or copies
// it directly into the payload buffer. On success SequenceID reflects the
// header the reassembler last extracted, which is the previous frame's when
// this block completed no new frame (see Reassembler.Consume); it is left
// unchanged when HasHeader is false, since headerless streams carry no
// sequence id.
func (c *Context) Read() error {
	if _, err := io.ReadFull(c.conn, c.readBuf); err != nil {
		return xerrors.NewGeneric("context.read", err)
	}

	if !c.HasHeader {
		copy(c.ownPayload, c.readBuf)
		return nil
	}

	if err := c.reassembler.Consume(c.readBuf); err != nil {
		return err
	}
	c.SequenceID = c.reassembler.SequenceID
	return nil
}
