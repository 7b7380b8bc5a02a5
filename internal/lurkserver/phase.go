// Package lurkserver wires the LURK codec and in-memory world together:
// it accepts TCP connections, runs a per-connection phase-gated read
// loop plus a dedicated write-pump goroutine, and feeds a single game
// loop goroutine that is the sole mutator of world/character state.
package lurkserver

import "github.com/udisondev/lurkserver/internal/lurk/codec"

// Phase is a connection's position in the per-connection state
// machine, gating which inbound message types are legal.
type Phase int

const (
	// PhaseAwaitingCharacter accepts only CHARACTER (plus PVPFIGHT/LEAVE,
	// which are legal everywhere).
	PhaseAwaitingCharacter Phase = iota
	// PhaseAccepted (after a successful CHARACTER) accepts START, plus
	// CHARACTER, PVPFIGHT and LEAVE.
	PhaseAccepted
	// PhaseStarted accepts MESSAGE, CHANGEROOM, FIGHT, PVPFIGHT, LOOT,
	// CHARACTER, LEAVE.
	PhaseStarted
	// PhaseClosed accepts nothing further; the connection is torn down.
	PhaseClosed
)

// serverOnly reports whether t may never legally originate from a
// client; types 7, 8, 9, 11, 13 and 14 are server-to-client only.
func serverOnly(t codec.MessageType) bool {
	switch t {
	case codec.TypeError, codec.TypeAccept, codec.TypeRoom,
		codec.TypeGame, codec.TypeConnection, codec.TypeVersion:
		return true
	}
	return false
}

// legal reports whether a message of type t may be received while in
// phase p. PVPFIGHT and LEAVE are legal in every phase; CHARACTER is
// legal everywhere except after close, since revival re-enters it from
// Accepted or Started too.
func legal(p Phase, t codec.MessageType) bool {
	if t == codec.TypePVPFight || t == codec.TypeLeave {
		return p != PhaseClosed
	}
	switch t {
	case codec.TypeCharacter:
		return p == PhaseAwaitingCharacter || p == PhaseAccepted || p == PhaseStarted
	case codec.TypeStart:
		return p == PhaseAccepted
	case codec.TypeMessage, codec.TypeChangeRoom, codec.TypeFight, codec.TypeLoot:
		return p == PhaseStarted
	default:
		return false
	}
}
