// Package character holds the authoritative Character type and its
// server-wide registry. The game loop is the only goroutine permitted
// to mutate a Character or the Registry; every other consumer treats
// values read from here as a snapshot.
package character

// Flags is the 1-byte status bitfield carried by both Character and
// world.Monster. Bit layout, high to low:
//
//	bit 7 ALIVE
//	bit 6 JOIN_BATTLE
//	bit 5 MONSTER
//	bit 4 STARTED
//	bit 3 READY
type Flags byte

const (
	FlagAlive      Flags = 1 << 7
	FlagJoinBattle Flags = 1 << 6
	FlagMonster    Flags = 1 << 5
	FlagStarted    Flags = 1 << 4
	FlagReady      Flags = 1 << 3
)

// Common flag combinations, values pinned to the exact bytes the
// protocol puts on the wire.
const (
	// FlagsAccepted (0xC8) is applied both to a brand-new character and
	// to one revived by reconnection: Ready, Alive, JoinBattle, not
	// Started.
	FlagsAccepted = FlagReady | FlagAlive | FlagJoinBattle

	// FlagsStarted (0xD8) is applied by START: Ready, Started, Alive,
	// JoinBattle.
	FlagsStarted = FlagReady | FlagStarted | FlagAlive | FlagJoinBattle

	// FlagsDeadPlayer (0x18) is applied when a character's health drops
	// to zero mid-fight: Started and Ready survive death.
	FlagsDeadPlayer = FlagStarted | FlagReady

	// FlagsDeadMonster (0x38) is applied when a monster's health drops
	// to zero: Monster, Started and Ready survive death.
	FlagsDeadMonster = FlagMonster | FlagStarted | FlagReady

	// FlagsInitialMonster (0xF8) is the flag value every monster starts
	// with at map load.
	FlagsInitialMonster = FlagAlive | FlagJoinBattle | FlagMonster | FlagStarted | FlagReady

	// FlagsLeft is applied by LEAVE: all bits cleared.
	FlagsLeft Flags = 0
)

func (f Flags) IsAlive() bool     { return f&FlagAlive != 0 }
func (f Flags) JoinsBattle() bool { return f&FlagJoinBattle != 0 }
func (f Flags) IsMonster() bool   { return f&FlagMonster != 0 }
func (f Flags) IsStarted() bool   { return f&FlagStarted != 0 }
func (f Flags) IsReady() bool     { return f&FlagReady != 0 }

// WithAlive returns f with the ALIVE bit set or cleared.
func (f Flags) WithAlive(alive bool) Flags {
	if alive {
		return f | FlagAlive
	}
	return f &^ FlagAlive
}

// WithJoinBattle returns f with the JOIN_BATTLE bit set or cleared.
func (f Flags) WithJoinBattle(joins bool) Flags {
	if joins {
		return f | FlagJoinBattle
	}
	return f &^ FlagJoinBattle
}
