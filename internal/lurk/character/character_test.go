package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagPredicates(t *testing.T) {
	f := FlagsAccepted
	assert.True(t, f.IsAlive())
	assert.True(t, f.JoinsBattle())
	assert.False(t, f.IsMonster())
	assert.False(t, f.IsStarted())
	assert.True(t, f.IsReady())
}

func TestFlagConstantsMatchWireBytes(t *testing.T) {
	assert.Equal(t, Flags(0xC8), FlagsAccepted)
	assert.Equal(t, Flags(0xD8), FlagsStarted)
	assert.Equal(t, Flags(0x18), FlagsDeadPlayer)
	assert.Equal(t, Flags(0x38), FlagsDeadMonster)
	assert.Equal(t, Flags(0xF8), FlagsInitialMonster)
	assert.Equal(t, Flags(0x00), FlagsLeft)
}

func TestWithAliveAndJoinBattle(t *testing.T) {
	f := FlagsStarted
	dead := f.WithAlive(false).WithJoinBattle(false)
	assert.False(t, dead.IsAlive())
	assert.False(t, dead.JoinsBattle())
	assert.True(t, dead.IsStarted())
	assert.True(t, dead.IsReady())
}

func TestRegistryCreateAndLookup(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Lookup("alice"))

	c := &Character{Name: "alice", Attack: 10, Defense: 10, Regen: 10, Health: 20, Flags: FlagsAccepted}
	r.Create(c)

	got := r.Lookup("alice")
	assert.Same(t, c, got)
	assert.Len(t, r.All(), 1)
}

func TestCharacterBindAndDeactivate(t *testing.T) {
	c := &Character{Name: "bob"}
	assert.Nil(t, c.Conn())
	assert.False(t, c.Active)

	fake := fakeSender{}
	c.Bind(fake)
	assert.True(t, c.Active)
	assert.Equal(t, fake, c.Conn())

	c.Deactivate()
	assert.False(t, c.Active)
	// Conn is left stale, not cleared, mirroring LEAVE semantics.
	assert.Equal(t, fake, c.Conn())
}

func TestCharacterStatTotal(t *testing.T) {
	c := &Character{Attack: 10, Defense: 15, Regen: 5}
	assert.Equal(t, uint16(30), c.StatTotal())
}

type fakeSender struct{}

func (fakeSender) Send(frame []byte) error { return nil }
