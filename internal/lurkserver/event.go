package lurkserver

import "github.com/udisondev/lurkserver/internal/lurk/codec"

// typeConnect is a pseudo message type, never present on the wire
// (valid types are 1-14), used to carry the "new connection" event
// through the game loop's fan-in queue so the VERSION/GAME handshake
// is ordered relative to every other mutation.
const typeConnect codec.MessageType = 0

// Event is one unit of work for the game loop: a decoded message
// stamped with the connection it arrived on, a synthetic connect event
// for a brand-new connection, or a synthetic LEAVE generated when a
// connection's read side fails.
type Event struct {
	Conn    *Connection
	Message codec.Message
}
