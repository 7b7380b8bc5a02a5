package character

// Sender abstracts the connection a Character is currently bound to.
// The game loop never talks to net.Conn directly; it hands encoded
// frames to a Sender, which queues them for that connection's writer
// goroutine. A Character's Sender is nil until a connection attaches,
// and is left stale (pointing at a closed connection) after LEAVE —
// the registry entry itself is never removed.
type Sender interface {
	Send(frame []byte) error
}

// Character is the authoritative state for one named player. Only the
// game loop goroutine may write to a Character's fields; connection
// handler goroutines never access a Character directly.
type Character struct {
	Name        string
	Description string
	Flags       Flags
	Attack      uint16
	Defense     uint16
	Regen       uint16
	Health      int16
	Gold        uint16
	CurrentRoom uint16

	// Active reports whether a live socket currently backs this
	// character. A Character with Active == false is disconnected but
	// remains in the Registry, stats preserved, until it is revived by
	// a later CHARACTER message bearing the same name.
	Active bool

	conn Sender
}

// Conn returns the connection most recently bound to this character,
// or nil if it has never connected. Deactivate does not clear it, so a
// disconnected character still returns its last (closed) connection.
func (c *Character) Conn() Sender { return c.conn }

// Bind attaches conn as this character's live connection and marks it
// active. Used both for first-time CHARACTER creation and for
// reconnection-based revival.
func (c *Character) Bind(conn Sender) {
	c.conn = conn
	c.Active = true
}

// Deactivate marks the character inactive without touching its stats.
// Called on LEAVE and on socket failure.
func (c *Character) Deactivate() {
	c.Active = false
}

// StatTotal is attack+defense+regen, checked against the server's
// initial_points at creation time.
func (c *Character) StatTotal() uint16 {
	return c.Attack + c.Defense + c.Regen
}
