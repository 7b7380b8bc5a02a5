package world

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/udisondev/lurkserver/internal/lurk/character"
)

// World is the complete, loaded map: every room and every monster,
// indexed for the O(1) lookups the game loop needs on every event.
type World struct {
	rooms    map[uint16]*Room
	monsters map[string]*Monster
}

// Room returns the room with the given id, or nil.
func (w *World) Room(id uint16) *Room {
	return w.rooms[id]
}

// Monster returns the monster with the given name, or nil. Looting
// resolves against this table, not a room's resident list, so a
// monster remains lootable from anywhere once its name is known to
// the client.
func (w *World) Monster(name string) *Monster {
	return w.monsters[name]
}

// Monsters returns every monster in the world, in no particular order.
func (w *World) Monsters() []*Monster {
	out := make([]*Monster, 0, len(w.monsters))
	for _, m := range w.monsters {
		out = append(out, m)
	}
	return out
}

// RoomIDs returns every loaded room id, in no particular order. Used at
// startup for a one-line "map loaded" log line.
func (w *World) RoomIDs() []uint16 {
	out := make([]uint16, 0, len(w.rooms))
	for id := range w.rooms {
		out = append(out, id)
	}
	return out
}

// mapFile mirrors the top-level JSON object of a map file.
type mapFile struct {
	Rooms    []mapRoom    `json:"rooms"`
	Monsters []mapMonster `json:"monsters"`
}

type mapRoom struct {
	ID          uint16   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Exits       []string `json:"exits"`
	Characters  []string `json:"characters"`
	Monsters    []string `json:"monsters"`
}

type mapMonster struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Attack      uint16 `json:"attack"`
	Defense     uint16 `json:"defense"`
	Regen       uint16 `json:"regen"`
	Health      int16  `json:"health"`
	Gold        uint16 `json:"gold"`
	CurrentRoom uint16 `json:"current_room"`
}

// Load parses a map file into a World, resolving every exit name and
// monster name against the room/monster tables and failing if any name
// is ambiguous or unresolvable. Exits are identified by target room
// name, so duplicate room names are a load-time error.
//
// Reading the file itself is the caller's job; Load only parses and
// validates an already-open io.Reader.
func Load(r io.Reader) (*World, error) {
	var mf mapFile
	if err := json.NewDecoder(r).Decode(&mf); err != nil {
		return nil, fmt.Errorf("world: parsing map file: %w", err)
	}

	byName := make(map[string]uint16, len(mf.Rooms))
	rooms := make(map[uint16]*Room, len(mf.Rooms))
	for _, mr := range mf.Rooms {
		if _, exists := byName[mr.Name]; exists {
			return nil, fmt.Errorf("world: duplicate room name %q", mr.Name)
		}
		if _, exists := rooms[mr.ID]; exists {
			return nil, fmt.Errorf("world: duplicate room id %d", mr.ID)
		}
		byName[mr.Name] = mr.ID
		rooms[mr.ID] = &Room{
			ID:          mr.ID,
			Name:        mr.Name,
			Description: mr.Description,
			Characters:  append([]string(nil), mr.Characters...),
			Monsters:    append([]string(nil), mr.Monsters...),
		}
	}

	monsters := make(map[string]*Monster, len(mf.Monsters))
	for _, mm := range mf.Monsters {
		if _, exists := monsters[mm.Name]; exists {
			return nil, fmt.Errorf("world: duplicate monster name %q", mm.Name)
		}
		monsters[mm.Name] = &Monster{
			Name:        mm.Name,
			Description: mm.Description,
			Flags:       character.FlagsInitialMonster,
			Attack:      mm.Attack,
			Defense:     mm.Defense,
			Regen:       mm.Regen,
			Health:      mm.Health,
			Gold:        mm.Gold,
			CurrentRoom: mm.CurrentRoom,
		}
	}

	// Resolve exits and validate monster residency now that both tables
	// are fully populated.
	for _, mr := range mf.Rooms {
		room := rooms[mr.ID]
		exits := make([]uint16, 0, len(mr.Exits))
		for _, exitName := range mr.Exits {
			destID, ok := byName[exitName]
			if !ok {
				return nil, fmt.Errorf("world: room %q has exit to unknown room %q", mr.Name, exitName)
			}
			exits = append(exits, destID)
		}
		room.Exits = exits

		for _, monsterName := range mr.Monsters {
			m, ok := monsters[monsterName]
			if !ok {
				return nil, fmt.Errorf("world: room %q lists unknown monster %q", mr.Name, monsterName)
			}
			if m.CurrentRoom != mr.ID {
				return nil, fmt.Errorf("world: monster %q current_room %d does not match room %q (id %d)", monsterName, m.CurrentRoom, mr.Name, mr.ID)
			}
		}
	}

	return &World{rooms: rooms, monsters: monsters}, nil
}
