package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMap = `{
  "rooms": [
    {"id": 0, "name": "Temple Entrance", "description": "A sunlit courtyard.", "exits": ["Great Hall"], "characters": [], "monsters": []},
    {"id": 1, "name": "Great Hall", "description": "A drafty stone hall.", "exits": ["Temple Entrance"], "characters": [], "monsters": ["Gorlak"]}
  ],
  "monsters": [
    {"name": "Gorlak", "description": "A hulking brute.", "attack": 15, "defense": 5, "regen": 2, "health": 40, "gold": 10, "current_room": 1}
  ]
}`

func TestLoad_ResolvesExitsAndMonsters(t *testing.T) {
	w, err := Load(strings.NewReader(sampleMap))
	require.NoError(t, err)

	entrance := w.Room(0)
	require.NotNil(t, entrance)
	require.Len(t, entrance.Exits, 1)
	assert.Equal(t, uint16(1), entrance.Exits[0])

	hall := w.Room(1)
	require.NotNil(t, hall)
	assert.Equal(t, []uint16{0}, hall.Exits)
	assert.Equal(t, []string{"Gorlak"}, hall.Monsters)

	gorlak := w.Monster("Gorlak")
	require.NotNil(t, gorlak)
	assert.Equal(t, uint16(15), gorlak.Attack)
	assert.True(t, gorlak.Flags.IsAlive())
	assert.True(t, gorlak.Flags.IsMonster())
}

func TestLoad_DuplicateRoomNameIsError(t *testing.T) {
	const dup = `{
		"rooms": [
			{"id": 0, "name": "Hall", "description": "", "exits": [], "characters": [], "monsters": []},
			{"id": 1, "name": "Hall", "description": "", "exits": [], "characters": [], "monsters": []}
		],
		"monsters": []
	}`
	_, err := Load(strings.NewReader(dup))
	assert.ErrorContains(t, err, "duplicate room name")
}

func TestLoad_UnknownExitNameIsError(t *testing.T) {
	const bad = `{
		"rooms": [
			{"id": 0, "name": "Hall", "description": "", "exits": ["Nowhere"], "characters": [], "monsters": []}
		],
		"monsters": []
	}`
	_, err := Load(strings.NewReader(bad))
	assert.ErrorContains(t, err, "unknown room")
}

func TestLoad_UnknownMonsterNameIsError(t *testing.T) {
	const bad = `{
		"rooms": [
			{"id": 0, "name": "Hall", "description": "", "exits": [], "characters": [], "monsters": ["Ghost"]}
		],
		"monsters": []
	}`
	_, err := Load(strings.NewReader(bad))
	assert.ErrorContains(t, err, "unknown monster")
}

func TestLoad_MonsterRoomMismatchIsError(t *testing.T) {
	const bad = `{
		"rooms": [
			{"id": 0, "name": "Hall", "description": "", "exits": [], "characters": [], "monsters": ["Ghost"]}
		],
		"monsters": [
			{"name": "Ghost", "description": "", "attack": 1, "defense": 1, "regen": 1, "health": 1, "gold": 0, "current_room": 5}
		]
	}`
	_, err := Load(strings.NewReader(bad))
	assert.ErrorContains(t, err, "does not match room")
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestRoomAddRemoveCharacter(t *testing.T) {
	r := &Room{Name: "Hall"}
	r.AddCharacter("alice")
	r.AddCharacter("alice")
	assert.Equal(t, []string{"alice"}, r.Characters)

	r.AddCharacter("bob")
	r.RemoveCharacter("alice")
	assert.Equal(t, []string{"bob"}, r.Characters)

	r.RemoveCharacter("nobody")
	assert.Equal(t, []string{"bob"}, r.Characters)
}
