package ecs

import (
	"github.com/phanxgames/motion"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for motion gesture events.
var GestureEventType = events.NewEventType[motion.GestureEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Gesture events are published to GestureEventType and can be consumed with
// Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) motion.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event motion.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}
