package lurkserver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/lurkserver/internal/lurk/codec"
)

func TestLegal_CharacterAnyOpenPhase(t *testing.T) {
	assert.True(t, legal(PhaseAwaitingCharacter, codec.TypeCharacter))
	assert.True(t, legal(PhaseAccepted, codec.TypeCharacter))
	assert.True(t, legal(PhaseStarted, codec.TypeCharacter))
	assert.False(t, legal(PhaseClosed, codec.TypeCharacter))
}

func TestLegal_StartOnlyAfterAccepted(t *testing.T) {
	assert.False(t, legal(PhaseAwaitingCharacter, codec.TypeStart))
	assert.True(t, legal(PhaseAccepted, codec.TypeStart))
	assert.False(t, legal(PhaseStarted, codec.TypeStart))
	assert.False(t, legal(PhaseClosed, codec.TypeStart))
}

func TestLegal_GameplayTypesOnlyAfterStarted(t *testing.T) {
	gameplay := []codec.MessageType{codec.TypeMessage, codec.TypeChangeRoom, codec.TypeFight, codec.TypeLoot}
	for _, typ := range gameplay {
		assert.False(t, legal(PhaseAwaitingCharacter, typ), "type %v", typ)
		assert.False(t, legal(PhaseAccepted, typ), "type %v", typ)
		assert.True(t, legal(PhaseStarted, typ), "type %v", typ)
		assert.False(t, legal(PhaseClosed, typ), "type %v", typ)
	}
}

func TestLegal_PVPFightAndLeaveAnyOpenPhase(t *testing.T) {
	for _, typ := range []codec.MessageType{codec.TypePVPFight, codec.TypeLeave} {
		assert.True(t, legal(PhaseAwaitingCharacter, typ))
		assert.True(t, legal(PhaseAccepted, typ))
		assert.True(t, legal(PhaseStarted, typ))
		assert.False(t, legal(PhaseClosed, typ))
	}
}

func TestLegal_ServerOnlyTypesNeverLegalFromClient(t *testing.T) {
	serverTypes := []codec.MessageType{
		codec.TypeError, codec.TypeAccept, codec.TypeRoom,
		codec.TypeGame, codec.TypeConnection, codec.TypeVersion,
	}
	phases := []Phase{PhaseAwaitingCharacter, PhaseAccepted, PhaseStarted}
	for _, typ := range serverTypes {
		assert.True(t, serverOnly(typ), "type %v", typ)
		for _, p := range phases {
			assert.False(t, legal(p, typ), "type %v phase %v", typ, p)
		}
	}
}

func TestServerOnly_ClientTypesAreNotServerOnly(t *testing.T) {
	clientTypes := []codec.MessageType{
		codec.TypeMessage, codec.TypeChangeRoom, codec.TypeFight,
		codec.TypePVPFight, codec.TypeLoot, codec.TypeStart, codec.TypeCharacter, codec.TypeLeave,
	}
	for _, typ := range clientTypes {
		assert.False(t, serverOnly(typ), "type %v", typ)
	}
}
