package codec

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxPayloadLen bounds any single length-prefixed field so a corrupt or
// hostile peer cannot force an unbounded allocation. LURK never sends
// payloads anywhere near this size; it exists purely as a backstop.
const MaxPayloadLen = 1 << 20

// Decode reads exactly one framed LURK message from r. It fails with a
// wrapped io error on short reads, ErrBadType if the leading type byte
// is 0 or >= 15, or ErrBadUTF8 if a message body or description is not
// valid UTF-8. Fixed-width name fields are not checked for UTF-8.
// Decode never reads past the message's declared length.
func Decode(r io.Reader) (Message, error) {
	br := NewReader(r)

	typeByte, err := br.ReadByte()
	if err != nil {
		return Message{}, fmt.Errorf("decode: reading type byte: %w", err)
	}

	t := MessageType(typeByte)
	if t < TypeMessage || t > TypeVersion {
		return Message{}, fmt.Errorf("%w: type byte %d", ErrBadType, typeByte)
	}

	msg := Message{Type: t}

	switch t {
	case TypeMessage:
		msgLen, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode MESSAGE: %w", err)
		}
		if err := checkLen(int(msgLen)); err != nil {
			return Message{}, err
		}
		recipient, err := br.ReadFixedString(NameWidth)
		if err != nil {
			return Message{}, fmt.Errorf("decode MESSAGE: %w", err)
		}
		sender, err := br.ReadFixedString(NameWidth)
		if err != nil {
			return Message{}, fmt.Errorf("decode MESSAGE: %w", err)
		}
		body, err := br.ReadString(int(msgLen))
		if err != nil {
			return Message{}, fmt.Errorf("decode MESSAGE: %w", err)
		}
		if !utf8.ValidString(body) {
			return Message{}, ErrBadUTF8
		}
		msg.MsgRecipient = recipient
		msg.MsgSender = sender
		msg.MsgBody = body

	case TypeChangeRoom:
		roomNum, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode CHANGEROOM: %w", err)
		}
		msg.RoomNum = roomNum

	case TypeFight:
		// empty payload

	case TypePVPFight:
		name, err := br.ReadFixedString(NameWidth)
		if err != nil {
			return Message{}, fmt.Errorf("decode PVPFIGHT: %w", err)
		}
		msg.TargetName = name

	case TypeLoot:
		name, err := br.ReadFixedString(NameWidth)
		if err != nil {
			return Message{}, fmt.Errorf("decode LOOT: %w", err)
		}
		msg.TargetName = name

	case TypeStart:
		// empty payload

	case TypeError:
		code, err := br.ReadByte()
		if err != nil {
			return Message{}, fmt.Errorf("decode ERROR: %w", err)
		}
		msgLen, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode ERROR: %w", err)
		}
		if err := checkLen(int(msgLen)); err != nil {
			return Message{}, err
		}
		body, err := br.ReadString(int(msgLen))
		if err != nil {
			return Message{}, fmt.Errorf("decode ERROR: %w", err)
		}
		if !utf8.ValidString(body) {
			return Message{}, ErrBadUTF8
		}
		msg.ErrCode = ErrorCode(code)
		msg.ErrMessage = body

	case TypeAccept:
		accept, err := br.ReadByte()
		if err != nil {
			return Message{}, fmt.Errorf("decode ACCEPT: %w", err)
		}
		msg.AcceptType = accept

	case TypeRoom:
		roomNum, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode ROOM: %w", err)
		}
		name, err := br.ReadFixedString(NameWidth)
		if err != nil {
			return Message{}, fmt.Errorf("decode ROOM: %w", err)
		}
		descLen, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode ROOM: %w", err)
		}
		if err := checkLen(int(descLen)); err != nil {
			return Message{}, err
		}
		desc, err := br.ReadString(int(descLen))
		if err != nil {
			return Message{}, fmt.Errorf("decode ROOM: %w", err)
		}
		if !utf8.ValidString(desc) {
			return Message{}, ErrBadUTF8
		}
		msg.RoomNum = roomNum
		msg.RoomName = name
		msg.Description = desc

	case TypeCharacter:
		name, err := br.ReadFixedString(NameWidth)
		if err != nil {
			return Message{}, fmt.Errorf("decode CHARACTER: %w", err)
		}
		flags, err := br.ReadByte()
		if err != nil {
			return Message{}, fmt.Errorf("decode CHARACTER: %w", err)
		}
		attack, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode CHARACTER: %w", err)
		}
		defense, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode CHARACTER: %w", err)
		}
		regen, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode CHARACTER: %w", err)
		}
		health, err := br.ReadInt16()
		if err != nil {
			return Message{}, fmt.Errorf("decode CHARACTER: %w", err)
		}
		gold, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode CHARACTER: %w", err)
		}
		currentRoom, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode CHARACTER: %w", err)
		}
		descLen, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode CHARACTER: %w", err)
		}
		if err := checkLen(int(descLen)); err != nil {
			return Message{}, err
		}
		desc, err := br.ReadString(int(descLen))
		if err != nil {
			return Message{}, fmt.Errorf("decode CHARACTER: %w", err)
		}
		if !utf8.ValidString(desc) {
			return Message{}, ErrBadUTF8
		}
		msg.CharName = name
		msg.CharFlags = flags
		msg.CharAttack = attack
		msg.CharDefense = defense
		msg.CharRegen = regen
		msg.CharHealth = health
		msg.CharGold = gold
		msg.CharCurrentRoom = currentRoom
		msg.CharDescription = desc

	case TypeGame:
		initialPoints, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode GAME: %w", err)
		}
		statLimit, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode GAME: %w", err)
		}
		descLen, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode GAME: %w", err)
		}
		if err := checkLen(int(descLen)); err != nil {
			return Message{}, err
		}
		desc, err := br.ReadString(int(descLen))
		if err != nil {
			return Message{}, fmt.Errorf("decode GAME: %w", err)
		}
		if !utf8.ValidString(desc) {
			return Message{}, ErrBadUTF8
		}
		msg.InitialPoints = initialPoints
		msg.StatLimit = statLimit
		msg.GameDesc = desc

	case TypeLeave:
		// empty payload

	case TypeConnection:
		roomNum, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode CONNECTION: %w", err)
		}
		name, err := br.ReadFixedString(NameWidth)
		if err != nil {
			return Message{}, fmt.Errorf("decode CONNECTION: %w", err)
		}
		descLen, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode CONNECTION: %w", err)
		}
		if err := checkLen(int(descLen)); err != nil {
			return Message{}, err
		}
		desc, err := br.ReadString(int(descLen))
		if err != nil {
			return Message{}, fmt.Errorf("decode CONNECTION: %w", err)
		}
		if !utf8.ValidString(desc) {
			return Message{}, ErrBadUTF8
		}
		msg.RoomNum = roomNum
		msg.RoomName = name
		msg.Description = desc

	case TypeVersion:
		major, err := br.ReadByte()
		if err != nil {
			return Message{}, fmt.Errorf("decode VERSION: %w", err)
		}
		minor, err := br.ReadByte()
		if err != nil {
			return Message{}, fmt.Errorf("decode VERSION: %w", err)
		}
		extLen, err := br.ReadUint16()
		if err != nil {
			return Message{}, fmt.Errorf("decode VERSION: %w", err)
		}
		if err := checkLen(int(extLen)); err != nil {
			return Message{}, err
		}
		ext, err := br.ReadBytes(int(extLen))
		if err != nil {
			return Message{}, fmt.Errorf("decode VERSION: %w", err)
		}
		msg.VersionMajor = major
		msg.VersionMinor = minor
		msg.Extensions = ext
	}

	return msg, nil
}

func checkLen(n int) error {
	if n < 0 || n > MaxPayloadLen {
		return fmt.Errorf("%w: length %d", ErrShortRead, n)
	}
	return nil
}

// Encode writes msg to w in LURK wire layout. desc_len/msg_len fields
// are derived from the accompanying payload's actual byte length, so
// callers never need to keep them in sync by hand.
func Encode(msg Message, w io.Writer) error {
	bw := NewWriter()
	bw.WriteByte(byte(msg.Type))

	switch msg.Type {
	case TypeMessage:
		body := []byte(msg.MsgBody)
		bw.WriteUint16(uint16(len(body)))
		bw.WriteFixedString(msg.MsgRecipient, NameWidth)
		bw.WriteFixedString(msg.MsgSender, NameWidth)
		bw.WriteBytes(body)

	case TypeChangeRoom:
		bw.WriteUint16(msg.RoomNum)

	case TypeFight:
		// empty payload

	case TypePVPFight, TypeLoot:
		bw.WriteFixedString(msg.TargetName, NameWidth)

	case TypeStart:
		// empty payload

	case TypeError:
		body := []byte(msg.ErrMessage)
		bw.WriteByte(byte(msg.ErrCode))
		bw.WriteUint16(uint16(len(body)))
		bw.WriteBytes(body)

	case TypeAccept:
		bw.WriteByte(msg.AcceptType)

	case TypeRoom, TypeConnection:
		desc := []byte(msg.Description)
		bw.WriteUint16(msg.RoomNum)
		bw.WriteFixedString(msg.RoomName, NameWidth)
		bw.WriteUint16(uint16(len(desc)))
		bw.WriteBytes(desc)

	case TypeCharacter:
		desc := []byte(msg.CharDescription)
		bw.WriteFixedString(msg.CharName, NameWidth)
		bw.WriteByte(msg.CharFlags)
		bw.WriteUint16(msg.CharAttack)
		bw.WriteUint16(msg.CharDefense)
		bw.WriteUint16(msg.CharRegen)
		bw.WriteInt16(msg.CharHealth)
		bw.WriteUint16(msg.CharGold)
		bw.WriteUint16(msg.CharCurrentRoom)
		bw.WriteUint16(uint16(len(desc)))
		bw.WriteBytes(desc)

	case TypeGame:
		desc := []byte(msg.GameDesc)
		bw.WriteUint16(msg.InitialPoints)
		bw.WriteUint16(msg.StatLimit)
		bw.WriteUint16(uint16(len(desc)))
		bw.WriteBytes(desc)

	case TypeLeave:
		// empty payload

	case TypeVersion:
		bw.WriteByte(msg.VersionMajor)
		bw.WriteByte(msg.VersionMinor)
		bw.WriteUint16(uint16(len(msg.Extensions)))
		bw.WriteBytes(msg.Extensions)

	default:
		return fmt.Errorf("%w: type byte %d", ErrBadType, byte(msg.Type))
	}

	if _, err := w.Write(bw.Bytes()); err != nil {
		return fmt.Errorf("encode %s: %w", msg.Type, err)
	}
	return nil
}
