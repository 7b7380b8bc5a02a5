package world

import "github.com/udisondev/lurkserver/internal/lurk/character"

// Monster is the authoritative state for one named monster. Like
// character.Character, only the game loop mutates a Monster's fields
// after load; monsters are never removed from the world, only killed.
// A dead monster stays in its room and remains lootable until its gold
// reaches zero.
type Monster struct {
	Name        string
	Description string
	Flags       character.Flags
	Attack      uint16
	Defense     uint16
	Regen       uint16
	Health      int16
	Gold        uint16
	CurrentRoom uint16
}
