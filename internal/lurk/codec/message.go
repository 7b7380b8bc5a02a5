// Package codec implements the LURK v2.3 wire protocol: framing, byte
// layout, and field widths for the 14 message types. All multi-byte
// integers are little-endian; fixed-width name fields are 32 bytes,
// null-padded on encode and null-truncated on decode.
package codec

import "fmt"

// MessageType identifies the leading type byte of a LURK frame.
type MessageType byte

const (
	TypeMessage    MessageType = 1
	TypeChangeRoom MessageType = 2
	TypeFight      MessageType = 3
	TypePVPFight   MessageType = 4
	TypeLoot       MessageType = 5
	TypeStart      MessageType = 6
	TypeError      MessageType = 7
	TypeAccept     MessageType = 8
	TypeRoom       MessageType = 9
	TypeCharacter  MessageType = 10
	TypeGame       MessageType = 11
	TypeLeave      MessageType = 12
	TypeConnection MessageType = 13
	TypeVersion    MessageType = 14
)

func (t MessageType) String() string {
	switch t {
	case TypeMessage:
		return "MESSAGE"
	case TypeChangeRoom:
		return "CHANGEROOM"
	case TypeFight:
		return "FIGHT"
	case TypePVPFight:
		return "PVPFIGHT"
	case TypeLoot:
		return "LOOT"
	case TypeStart:
		return "START"
	case TypeError:
		return "ERROR"
	case TypeAccept:
		return "ACCEPT"
	case TypeRoom:
		return "ROOM"
	case TypeCharacter:
		return "CHARACTER"
	case TypeGame:
		return "GAME"
	case TypeLeave:
		return "LEAVE"
	case TypeConnection:
		return "CONNECTION"
	case TypeVersion:
		return "VERSION"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", byte(t))
	}
}

// ErrorCode is the u8 error code carried by an ERROR message.
type ErrorCode byte

const (
	ErrOther          ErrorCode = 0
	ErrBadRoom        ErrorCode = 1
	ErrPlayerExists   ErrorCode = 2
	ErrBadMonster     ErrorCode = 3
	ErrStatError      ErrorCode = 4
	ErrNotReady       ErrorCode = 5
	ErrNoTarget       ErrorCode = 6
	ErrNoFight        ErrorCode = 7
	ErrNoPlayerCombat ErrorCode = 8
)

// NameWidth is the fixed width, in bytes, of every name/recipient field
// on the wire.
const NameWidth = 32

// Message is the decoded form of one LURK frame. The field groups
// below are populated selected by Type; a single struct keeps Decode's
// return value simple, since the message set is small and every type
// is shared between server and client.
type Message struct {
	Type MessageType

	// Type 1
	MsgRecipient string
	MsgSender    string
	MsgBody      string

	// Type 2, also reused for ROOM/CONNECTION's room_num field
	RoomNum uint16

	// Type 4, 5 — target_name
	TargetName string

	// Type 7
	ErrCode    ErrorCode
	ErrMessage string

	// Type 8
	AcceptType byte

	// Type 9, 13 — room_name/description, and RoomNum above
	RoomName    string
	Description string

	// Type 10 — Character
	CharName        string
	CharFlags       byte
	CharAttack      uint16
	CharDefense     uint16
	CharRegen       uint16
	CharHealth      int16
	CharGold        uint16
	CharCurrentRoom uint16
	CharDescription string

	// Type 11 — Game
	InitialPoints uint16
	StatLimit     uint16
	GameDesc      string

	// Type 14 — Version
	VersionMajor uint8
	VersionMinor uint8
	Extensions   []byte
}
