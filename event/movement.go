package event

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/survivalfly/movement"
)

// Location is the JSON form of movement.Location.
type Location struct {
	Pos   mgl64.Vec3 `json:"pos"`
	Yaw   float64    `json:"yaw,omitempty"`
	Pitch float64    `json:"pitch,omitempty"`
}

// Loc converts the location to a movement.Location.
func (l Location) Loc() movement.Location {
	return movement.Location{Pos: l.Pos, Yaw: l.Yaw, Pitch: l.Pitch}
}

// FromLoc ...
func FromLoc(l movement.Location) Location {
	return Location{Pos: l.Pos, Yaw: l.Yaw, Pitch: l.Pitch}
}

// Input is the JSON form of movement.Input.
type Input struct {
	Sprinting bool `json:"sprinting,omitempty"`
	Sneaking  bool `json:"sneaking,omitempty"`
	Blocking  bool `json:"blocking,omitempty"`
}

// JoinEvent is sent when an entity joins or respawns.
type JoinEvent struct {
	NopEvent
	Name    string     `json:"name,omitempty"`
	Pos     mgl64.Vec3 `json:"pos"`
	Respawn bool       `json:"respawn,omitempty"`
}

func (JoinEvent) ID() byte {
	return EventIDJoin
}

// MoveEvent is a single move of an entity.
type MoveEvent struct {
	NopEvent
	From  Location `json:"from"`
	To    Location `json:"to"`
	Input Input    `json:"input"`
}

func (MoveEvent) ID() byte {
	return EventIDMove
}

// Movement returns the input of the move.
func (ev MoveEvent) Movement() movement.Input {
	return movement.Input{Sprinting: ev.Input.Sprinting, Sneaking: ev.Input.Sneaking, Blocking: ev.Input.Blocking}
}

// VelocityEvent is sent when velocity, such as knockback, is applied to an entity.
type VelocityEvent struct {
	NopEvent
	Velocity mgl64.Vec3 `json:"velocity"`
}

func (VelocityEvent) ID() byte {
	return EventIDVelocity
}

// TeleportEvent is sent when an entity is teleported.
type TeleportEvent struct {
	NopEvent
	Pos mgl64.Vec3 `json:"pos"`
}

func (TeleportEvent) ID() byte {
	return EventIDTeleport
}

// QuitEvent is sent when an entity leaves.
type QuitEvent struct {
	NopEvent
}

func (QuitEvent) ID() byte {
	return EventIDQuit
}

// SprintEvent is sent when the sprinting state of an entity changes. Lost is set if the server
// stopped the sprint, e.g. because of hunger.
type SprintEvent struct {
	NopEvent
	Sprinting bool `json:"sprinting"`
	Lost      bool `json:"lost,omitempty"`
}

func (SprintEvent) ID() byte {
	return EventIDSprint
}

// SneakEvent is sent when an entity toggles sneaking.
type SneakEvent struct {
	NopEvent
	Sneaking bool `json:"sneaking"`
}

func (SneakEvent) ID() byte {
	return EventIDSneak
}

// HoverEvent is sent when an entity stayed in the air without moving for too long.
type HoverEvent struct {
	NopEvent
	At Location `json:"at"`
}

func (HoverEvent) ID() byte {
	return EventIDHover
}
