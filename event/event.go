package event

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/disgoorg/json"
	"github.com/google/uuid"
	"github.com/oomph-ac/survivalfly/oerror"
)

const EventsVersion = "1"

// Event is something that happened to a tracked entity, in the order it was observed.
type Event interface {
	ID() byte
	Time() int64
	Entity() uuid.UUID
}

// NopEvent holds the fields shared by all events. EvTime is in milliseconds.
type NopEvent struct {
	EvEntity uuid.UUID `json:"entity"`
	EvTime   int64     `json:"time"`
}

func (n NopEvent) Time() int64 {
	return n.EvTime
}

func (n NopEvent) Entity() uuid.UUID {
	return n.EvEntity
}

const (
	_ = iota
	EventIDJoin
	EventIDMove
	EventIDVelocity
	EventIDTeleport
	EventIDQuit
	EventIDBlock
	EventIDSprint
	EventIDSneak
	EventIDEffect
	EventIDAttribute
	EventIDEquipment
	EventIDHover
)

// Encode encodes an event as its ID followed by a space and the JSON encoding of the event.
func Encode(ev Event) ([]byte, error) {
	dat, err := json.Marshal(ev)
	if err != nil {
		return nil, oerror.New("error encoding event %d: %v", ev.ID(), err)
	}
	buf := bytes.NewBuffer(make([]byte, 0, len(dat)+4))
	buf.WriteString(strconv.Itoa(int(ev.ID())))
	buf.WriteByte(' ')
	buf.Write(dat)
	return buf.Bytes(), nil
}

// Decode decodes a single event encoded with Encode.
func Decode(dat []byte) (Event, error) {
	rawID, payload, ok := bytes.Cut(bytes.TrimSpace(dat), []byte{' '})
	if !ok {
		return nil, oerror.New("event without payload: %q", dat)
	}
	id, err := strconv.Atoi(string(rawID))
	if err != nil {
		return nil, oerror.New("invalid event id %q", rawID)
	}

	var ev Event
	switch id {
	case EventIDJoin:
		ev, err = decode[JoinEvent](payload)
	case EventIDMove:
		ev, err = decode[MoveEvent](payload)
	case EventIDVelocity:
		ev, err = decode[VelocityEvent](payload)
	case EventIDTeleport:
		ev, err = decode[TeleportEvent](payload)
	case EventIDQuit:
		ev, err = decode[QuitEvent](payload)
	case EventIDBlock:
		ev, err = decode[BlockEvent](payload)
	case EventIDSprint:
		ev, err = decode[SprintEvent](payload)
	case EventIDSneak:
		ev, err = decode[SneakEvent](payload)
	case EventIDEffect:
		ev, err = decode[EffectEvent](payload)
	case EventIDAttribute:
		ev, err = decode[AttributeEvent](payload)
	case EventIDEquipment:
		ev, err = decode[EquipmentEvent](payload)
	case EventIDHover:
		ev, err = decode[HoverEvent](payload)
	default:
		return nil, oerror.New("unknown event: %d", id)
	}
	if err != nil {
		return nil, oerror.New("error decoding event %d: %v", id, err)
	}
	return ev, nil
}

func decode[T Event](payload []byte) (Event, error) {
	var ev T
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return ev, nil
}
