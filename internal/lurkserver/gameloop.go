package lurkserver

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/lurkserver/internal/lurk/character"
	"github.com/udisondev/lurkserver/internal/lurk/codec"
	"github.com/udisondev/lurkserver/internal/lurk/world"
)

// GameLoop is the single actor that owns the world and character
// registry. Exactly one goroutine calls Run; every other goroutine in
// the process only ever writes to its Events channel.
type GameLoop struct {
	World    *world.World
	Registry *character.Registry

	InitialPoints     uint16
	StatLimit         uint16
	ServerDescription string

	Events chan Event

	// connChar tracks which character currently owns each live
	// connection, so CHANGEROOM/FIGHT/LOOT/MESSAGE can locate the
	// acting character by connection identity without a linear registry
	// scan. Only Run's goroutine touches it.
	connChar map[*Connection]*character.Character
}

// NewGameLoop constructs a GameLoop over an already-loaded world and a
// fresh registry.
func NewGameLoop(w *world.World, reg *character.Registry, initialPoints, statLimit uint16, serverDescription string, queueSize int) *GameLoop {
	return &GameLoop{
		World:             w,
		Registry:          reg,
		InitialPoints:     initialPoints,
		StatLimit:         statLimit,
		ServerDescription: serverDescription,
		Events:            make(chan Event, queueSize),
		connChar:          make(map[*Connection]*character.Character),
	}
}

// Run consumes Events until ctx is cancelled or the channel is closed.
// Either way every live socket is shut down before Run returns.
func (g *GameLoop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			g.shutdownAll()
			return
		case ev, ok := <-g.Events:
			if !ok {
				g.shutdownAll()
				return
			}
			g.handle(ev)
		}
	}
}

func (g *GameLoop) shutdownAll() {
	for conn := range g.connChar {
		conn.CloseAsync()
	}
}

func (g *GameLoop) handle(ev Event) {
	switch ev.Message.Type {
	case typeConnect:
		g.handleConnect(ev)
	case codec.TypeMessage:
		g.handleMessage(ev)
	case codec.TypeChangeRoom:
		g.handleChangeRoom(ev)
	case codec.TypeFight:
		g.handleFight(ev)
	case codec.TypePVPFight:
		g.handlePVPFight(ev)
	case codec.TypeLoot:
		g.handleLoot(ev)
	case codec.TypeStart:
		g.handleStart(ev)
	case codec.TypeCharacter:
		g.handleCharacter(ev)
	case codec.TypeLeave:
		g.handleLeave(ev)
	default:
		slog.Warn("game loop received unexpected event type", "type", ev.Message.Type)
	}
}

// handleConnect sends the VERSION/GAME handshake through the game loop
// so it is ordered relative to every other mutation.
func (g *GameLoop) handleConnect(ev Event) {
	_ = SendConnection(ev.Conn, codec.Message{Type: codec.TypeVersion, VersionMajor: 2, VersionMinor: 3})
	_ = SendConnection(ev.Conn, codec.Message{
		Type:          codec.TypeGame,
		InitialPoints: g.InitialPoints,
		StatLimit:     g.StatLimit,
		GameDesc:      g.ServerDescription,
	})
}

func (g *GameLoop) characterFor(conn *Connection) *character.Character {
	return g.connChar[conn]
}

func (g *GameLoop) handleMessage(ev Event) {
	msg := ev.Message
	sender := g.characterFor(ev.Conn)

	recipient := g.Registry.Lookup(msg.MsgRecipient)
	if recipient == nil || !recipient.Active {
		if sender != nil {
			SendError(sender, codec.ErrNoTarget, "No such recipient.")
		} else {
			_ = SendConnection(ev.Conn, codec.Message{Type: codec.TypeError, ErrCode: codec.ErrNoTarget, ErrMessage: "No such recipient."})
		}
		return
	}
	SendCharacter(recipient, msg)
}

func (g *GameLoop) handleChangeRoom(ev Event) {
	char := g.characterFor(ev.Conn)
	if char == nil {
		return
	}
	if char.Health <= 0 || !char.Flags.IsAlive() {
		SendError(char, codec.ErrOther, "Player is dead and cannot change rooms!")
		return
	}

	oldRoom := g.World.Room(char.CurrentRoom)
	if oldRoom == nil {
		return
	}

	valid := false
	for _, exitID := range oldRoom.Exits {
		if exitID == ev.Message.RoomNum {
			valid = true
			break
		}
	}
	if !valid {
		SendError(char, codec.ErrBadRoom, "Not a valid room or connection!")
		return
	}

	newRoom := g.World.Room(ev.Message.RoomNum)
	if newRoom == nil {
		SendError(char, codec.ErrBadRoom, "Not a valid room or connection!")
		return
	}

	oldRoom.RemoveCharacter(char.Name)
	newRoom.AddCharacter(char.Name)
	char.CurrentRoom = ev.Message.RoomNum

	SendRoom(char, g.Registry, g.World, newRoom)

	moverFrame := characterFrame(char)
	seen := map[string]bool{char.Name: true}
	for _, room := range [2]*world.Room{oldRoom, newRoom} {
		for _, name := range room.Characters {
			if seen[name] {
				continue
			}
			seen[name] = true
			if other := g.Registry.Lookup(name); other != nil && other.Active {
				SendCharacter(other, moverFrame)
			}
		}
	}
}

func (g *GameLoop) handleFight(ev Event) {
	initiator := g.characterFor(ev.Conn)
	if initiator == nil {
		return
	}
	if !initiator.Flags.IsAlive() {
		SendError(initiator, codec.ErrOther, "Dead players cannot start battles!")
		return
	}

	room := g.World.Room(initiator.CurrentRoom)
	if room == nil {
		return
	}

	var players []*character.Character
	for _, name := range room.Characters {
		if p := g.Registry.Lookup(name); p != nil && p.Active && p.Flags.JoinsBattle() && p.Flags.IsAlive() {
			players = append(players, p)
		}
	}
	var monsters []*world.Monster
	for _, name := range room.Monsters {
		if m := g.World.Monster(name); m != nil && m.Flags.JoinsBattle() && m.Health > 0 {
			monsters = append(monsters, m)
		}
	}
	if len(monsters) == 0 {
		SendError(initiator, codec.ErrOther, "No monsters in the room to fight!")
		return
	}

	playerPool := 0
	for _, p := range players {
		playerPool += int(p.Attack)
	}
	monsterPool := 0
	for _, m := range monsters {
		monsterPool += int(m.Attack)
	}

	for _, m := range monsters {
		SendNarration(initiator, fmt.Sprintf("The players are attacking %s!", m.Name))
		dmg := max(0, playerPool-int(m.Defense))
		m.Health -= int16(dmg)
		m.Health += int16(math.Floor(float64(m.Regen) * 0.10))
		if m.Health <= 0 {
			m.Flags = character.FlagsDeadMonster
			monsterPool -= int(m.Attack)
		}
		g.broadcastToRoom(room, monsterCharacterFrame(m))
	}

	for _, p := range players {
		SendNarration(initiator, fmt.Sprintf("The monsters are attacking %s!", p.Name))
		dmg := max(0, monsterPool-int(p.Defense))
		p.Health -= int16(dmg)
		p.Health += int16(math.Floor(float64(p.Regen) * 0.10))
		if p.Health <= 0 {
			p.Flags = character.FlagsDeadPlayer
			playerPool -= int(p.Attack)
		}
		g.broadcastToRoom(room, characterFrame(p))
	}
}

func (g *GameLoop) broadcastToRoom(room *world.Room, frame codec.Message) {
	for _, name := range room.Characters {
		if p := g.Registry.Lookup(name); p != nil && p.Active {
			SendCharacter(p, frame)
		}
	}
}

func (g *GameLoop) handlePVPFight(ev Event) {
	if char := g.characterFor(ev.Conn); char != nil {
		SendError(char, codec.ErrNoPlayerCombat, "PVP combat is not supported.")
		return
	}
	_ = SendConnection(ev.Conn, codec.Message{Type: codec.TypeError, ErrCode: codec.ErrNoPlayerCombat, ErrMessage: "PVP combat is not supported."})
}

func (g *GameLoop) handleLoot(ev Event) {
	char := g.characterFor(ev.Conn)
	if char == nil {
		return
	}
	if char.Health <= 0 || !char.Flags.IsAlive() {
		SendError(char, codec.ErrOther, "Player is dead and cannot loot!")
		return
	}

	target := g.World.Monster(ev.Message.TargetName)
	if target == nil {
		SendError(char, codec.ErrBadMonster, "Not a valid monster to loot!")
		return
	}
	if target.Flags.IsAlive() {
		SendError(char, codec.ErrBadMonster, "Monster is not dead and cannot be looted!")
		return
	}
	if target.Gold == 0 {
		SendError(char, codec.ErrBadMonster, "Monster has already been looted!")
		return
	}

	char.Gold += target.Gold
	target.Gold = 0

	SendCharacter(char, characterFrame(char))
	SendCharacter(char, monsterCharacterFrame(target))
}

func (g *GameLoop) handleStart(ev Event) {
	char := g.characterFor(ev.Conn)
	if char == nil {
		return
	}
	room := g.World.Room(0)
	if room == nil {
		SendError(char, codec.ErrOther, "Starting room is not available.")
		return
	}
	SendRoom(char, g.Registry, g.World, room)
	char.Flags = character.FlagsStarted
	ev.Conn.SetPhase(PhaseStarted)
}

const temple = "Temple Entrance"

func (g *GameLoop) handleCharacter(ev Event) {
	msg := ev.Message

	if existing := g.Registry.Lookup(msg.CharName); existing != nil {
		if existing.Active {
			_ = SendConnection(ev.Conn, codec.Message{
				Type:       codec.TypeError,
				ErrCode:    codec.ErrPlayerExists,
				ErrMessage: "Character already exists!",
			})
			return
		}
		g.reviveCharacter(ev.Conn, existing, msg)
		return
	}

	if msg.CharAttack+msg.CharDefense+msg.CharRegen > g.InitialPoints {
		_ = SendConnection(ev.Conn, codec.Message{
			Type:       codec.TypeError,
			ErrCode:    codec.ErrStatError,
			ErrMessage: "Total points exceeds initial points",
		})
		return
	}

	health := msg.CharHealth
	if health == 0 {
		health = 20
	}

	char := &character.Character{
		Name:        msg.CharName,
		Description: msg.CharDescription,
		Flags:       character.FlagsAccepted,
		Attack:      msg.CharAttack,
		Defense:     msg.CharDefense,
		Regen:       msg.CharRegen,
		Health:      health,
		Gold:        0,
		CurrentRoom: 0,
	}
	char.Bind(ev.Conn)
	g.Registry.Create(char)
	g.connChar[ev.Conn] = char

	if room := g.World.Room(0); room != nil {
		room.AddCharacter(char.Name)
	}

	ev.Conn.SetPhase(PhaseAccepted)
	SendAccept(char, codec.TypeCharacter)
	SendCharacter(char, characterFrame(char))
}

// reviveCharacter rebinds a disconnected character to a new connection.
// Attack/defense/regen/gold survive the disconnect; health and flags are
// reset as if freshly accepted.
func (g *GameLoop) reviveCharacter(conn *Connection, existing *character.Character, msg codec.Message) {
	if old := g.World.Room(existing.CurrentRoom); old != nil {
		old.RemoveCharacter(existing.Name)
	}

	existing.Bind(conn)
	existing.Flags = character.FlagsAccepted
	existing.Health = 20
	existing.CurrentRoom = msg.CharCurrentRoom
	g.connChar[conn] = existing

	room := g.World.Room(existing.CurrentRoom)
	if room != nil {
		room.AddCharacter(existing.Name)
	}

	conn.SetPhase(PhaseAccepted)
	SendAccept(existing, codec.TypeCharacter)
	SendCharacter(existing, characterFrame(existing))

	narration := fmt.Sprintf("%s stirs back to life.", existing.Name)
	if room != nil && room.Name == temple {
		narration = fmt.Sprintf("%s rises once more at the Temple Entrance.", existing.Name)
	}
	SendNarration(existing, narration)
}

func (g *GameLoop) handleLeave(ev Event) {
	if char := g.connChar[ev.Conn]; char != nil {
		char.Deactivate()
		char.Flags = character.FlagsLeft
	}
	delete(g.connChar, ev.Conn)
	ev.Conn.CloseAsync()
}
