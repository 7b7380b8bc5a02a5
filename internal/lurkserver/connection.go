package lurkserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/lurkserver/internal/lurk/codec"
)

// Connection wraps one client socket: a blocking read loop that
// decodes frames and applies the phase gate, and a dedicated
// writePump goroutine draining a buffered send queue, so a slow
// reader on the other end never stalls the game loop or any other
// connection.
type Connection struct {
	ID   uint64
	conn net.Conn
	addr string

	phase atomic.Int32

	sendCh      chan []byte
	closeCh     chan struct{}
	closeOnce   sync.Once
	pumpStarted atomic.Bool

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewConnection wraps conn for id, with the given send-queue capacity
// and read/write deadlines (config.Server's SendQueueSize/
// ReadTimeout/WriteTimeout). A zero deadline disables it.
func NewConnection(conn net.Conn, id uint64, sendQueueSize int, readTimeout, writeTimeout time.Duration) *Connection {
	c := &Connection{
		ID:           id,
		conn:         conn,
		addr:         conn.RemoteAddr().String(),
		sendCh:       make(chan []byte, sendQueueSize),
		closeCh:      make(chan struct{}),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
	c.phase.Store(int32(PhaseAwaitingCharacter))
	return c
}

// Addr returns the remote address, for logging.
func (c *Connection) Addr() string { return c.addr }

// Phase returns the connection's current phase-gate position.
func (c *Connection) Phase() Phase { return Phase(c.phase.Load()) }

// SetPhase transitions the connection's phase. The game loop calls
// this after a CHARACTER or START event succeeds; CloseAsync calls it
// to set PhaseClosed.
func (c *Connection) SetPhase(p Phase) { c.phase.Store(int32(p)) }

// Send queues an encoded frame for asynchronous delivery. Non-blocking:
// if the queue is full the connection is torn down and an error is
// returned.
func (c *Connection) Send(frame []byte) error {
	select {
	case c.sendCh <- frame:
		return nil
	default:
		slog.Warn("send queue full, disconnecting slow client", "client", c.addr)
		c.CloseAsync()
		return fmt.Errorf("connection %d: send queue full", c.ID)
	}
}

// CloseAsync signals the writePump to flush what is queued and close
// the socket, and marks the connection closed, without blocking. Safe
// to call multiple times. If the writePump was never started (the
// connection never entered its read loop), the socket is closed here
// directly.
func (c *Connection) CloseAsync() {
	c.closeOnce.Do(func() {
		c.SetPhase(PhaseClosed)
		close(c.closeCh)
		if !c.pumpStarted.Load() {
			_ = c.conn.Close()
		}
	})
}

// writePump drains sendCh onto the socket until the connection closes.
// Run as its own goroutine for the lifetime of the connection. On
// close it flushes frames already queued (a final ERROR frame must
// reach the client before the socket goes away), then closes the
// socket, which also unblocks the read loop.
func (c *Connection) writePump() {
	defer func() { _ = c.conn.Close() }()
	for {
		select {
		case frame := <-c.sendCh:
			if err := c.writeFrame(frame); err != nil {
				return
			}
		case <-c.closeCh:
			for {
				select {
				case frame := <-c.sendCh:
					if err := c.writeFrame(frame); err != nil {
						return
					}
				default:
					return
				}
			}
		}
	}
}

func (c *Connection) writeFrame(frame []byte) error {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			slog.Warn("set write deadline failed", "client", c.addr, "error", err)
			return err
		}
	}
	if _, err := c.conn.Write(frame); err != nil {
		slog.Warn("write failed", "client", c.addr, "error", err)
		return err
	}
	return nil
}

// ReadLoop blocks decoding frames off the connection, applying the
// phase gate, and forwarding legal events to the game loop's fan-in
// channel. It returns once the connection is closed, a
// decode error occurs, or a protocol violation terminates the
// handler. After a client LEAVE it returns having forwarded that
// LEAVE; after a decode error or protocol violation it enqueues a
// synthetic LEAVE so the game loop cleans up this character. When the
// socket was closed from this side (the read fails with
// net.ErrClosed) it returns without enqueuing a LEAVE.
func (c *Connection) ReadLoop(events chan<- Event) {
	defer c.CloseAsync()
	c.pumpStarted.Store(true)
	go c.writePump()

	events <- Event{Conn: c, Message: codec.Message{Type: typeConnect}}

	for {
		if c.readTimeout > 0 {
			if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
				slog.Warn("set read deadline failed", "client", c.addr, "error", err)
				break
			}
		}

		msg, err := codec.Decode(c.conn)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			slog.Debug("decode failed, disconnecting", "client", c.addr, "error", err)
			break
		}

		if serverOnly(msg.Type) {
			slog.Warn("client sent server-only message type, closing", "client", c.addr, "type", msg.Type)
			_ = SendConnection(c, codec.Message{Type: codec.TypeError, ErrCode: codec.ErrOther, ErrMessage: "unexpected message type"})
			break
		}

		if !legal(c.Phase(), msg.Type) {
			_ = SendConnection(c, codec.Message{Type: codec.TypeError, ErrCode: codec.ErrNotReady, ErrMessage: "not ready for that message in the current phase"})
			continue
		}

		events <- Event{Conn: c, Message: msg}

		if msg.Type == codec.TypeLeave {
			return
		}
	}

	events <- Event{Conn: c, Message: codec.Message{Type: codec.TypeLeave}}
}
