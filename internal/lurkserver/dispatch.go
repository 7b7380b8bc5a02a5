package lurkserver

import (
	"bytes"
	"log/slog"

	"github.com/udisondev/lurkserver/internal/lurk/character"
	"github.com/udisondev/lurkserver/internal/lurk/codec"
	"github.com/udisondev/lurkserver/internal/lurk/world"
)

// encodeFrame is the single Encode call site for every dispatcher
// helper below, so a codec bug surfaces in one place.
func encodeFrame(msg codec.Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := codec.Encode(msg, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SendConnection encodes msg and enqueues it directly on conn, with no
// reference to a Character (used for gate violations and pre-CHARACTER
// handshake frames). A queue-full/closed connection is not itself a
// game-loop error; the connection tears itself down.
func SendConnection(conn *Connection, msg codec.Message) error {
	frame, err := encodeFrame(msg)
	if err != nil {
		slog.Error("encode failed", "type", msg.Type, "error", err)
		return err
	}
	return conn.Send(frame)
}

// SendCharacter encodes msg and enqueues it on c's bound connection, if
// any. A character with no live connection (disconnected, awaiting
// revival) silently drops the frame rather than erroring — there is no
// socket to fail. A write failure marks the character inactive rather
// than propagating, so one broken socket never aborts the game loop.
func SendCharacter(c *character.Character, msg codec.Message) {
	conn := c.Conn()
	if conn == nil || !c.Active {
		return
	}
	frame, err := encodeFrame(msg)
	if err != nil {
		slog.Error("encode failed", "type", msg.Type, "character", c.Name, "error", err)
		return
	}
	if err := conn.Send(frame); err != nil {
		slog.Warn("send failed, marking character inactive", "character", c.Name, "error", err)
		c.Deactivate()
	}
}

// SendMonsterAsCharacter encodes m as a CHARACTER frame — monsters
// share the CHARACTER wire shape, distinguished by the MONSTER flag
// bit — and sends it to c.
func SendMonsterAsCharacter(c *character.Character, m *world.Monster) {
	SendCharacter(c, monsterCharacterFrame(m))
}

func monsterCharacterFrame(m *world.Monster) codec.Message {
	return codec.Message{
		Type:            codec.TypeCharacter,
		CharName:        m.Name,
		CharFlags:       byte(m.Flags),
		CharAttack:      m.Attack,
		CharDefense:     m.Defense,
		CharRegen:       m.Regen,
		CharHealth:      m.Health,
		CharGold:        m.Gold,
		CharCurrentRoom: m.CurrentRoom,
		CharDescription: m.Description,
	}
}

func characterFrame(c *character.Character) codec.Message {
	return codec.Message{
		Type:            codec.TypeCharacter,
		CharName:        c.Name,
		CharFlags:       byte(c.Flags),
		CharAttack:      c.Attack,
		CharDefense:     c.Defense,
		CharRegen:       c.Regen,
		CharHealth:      c.Health,
		CharGold:        c.Gold,
		CharCurrentRoom: c.CurrentRoom,
		CharDescription: c.Description,
	}
}

// SendAccept sends an ACCEPT(acceptedType) frame to c.
func SendAccept(c *character.Character, acceptedType codec.MessageType) {
	SendCharacter(c, codec.Message{Type: codec.TypeAccept, AcceptType: byte(acceptedType)})
}

// SendError sends an ERROR frame to c.
func SendError(c *character.Character, code codec.ErrorCode, message string) {
	SendCharacter(c, codec.Message{Type: codec.TypeError, ErrCode: code, ErrMessage: message})
}

// SendRoom sends the full room-entry sequence used by both CHANGEROOM
// and START: ROOM(room), one CHARACTER per other resident, one
// CHARACTER per resident monster, then one CONNECTION per exit.
func SendRoom(c *character.Character, reg *character.Registry, w *world.World, room *world.Room) {
	SendCharacter(c, codec.Message{
		Type:        codec.TypeRoom,
		RoomNum:     room.ID,
		RoomName:    room.Name,
		Description: room.Description,
	})

	for _, name := range room.Characters {
		if name == c.Name {
			continue
		}
		if other := reg.Lookup(name); other != nil {
			SendCharacter(c, characterFrame(other))
		}
	}

	for _, name := range room.Monsters {
		if m := w.Monster(name); m != nil {
			SendMonsterAsCharacter(c, m)
		}
	}

	for _, exitID := range room.Exits {
		exit := w.Room(exitID)
		if exit == nil {
			continue
		}
		SendCharacter(c, codec.Message{
			Type:        codec.TypeConnection,
			RoomNum:     exit.ID,
			RoomName:    exit.Name,
			Description: exit.Description,
		})
	}
}

// narrationSender flags a MESSAGE as server-originated narration for
// reference-client interop: bytes 30-31 of the 32-byte sender field
// set to 0x00 0x01. Building the sender name here keeps the convention
// in one place.
func narrationSender(name string) string {
	raw := make([]byte, codec.NameWidth)
	copy(raw, name)
	raw[30], raw[31] = 0x00, 0x01
	return string(raw)
}

// SendNarration sends a server-authored MESSAGE to c, marked as
// narration per the sender-field convention above.
func SendNarration(c *character.Character, body string) {
	SendCharacter(c, codec.Message{
		Type:      codec.TypeMessage,
		MsgSender: narrationSender("Narrator"),
		MsgBody:   body,
	})
}
