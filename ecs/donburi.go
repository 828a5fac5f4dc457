// Package ecs provides ECS adapters for launchpad.
package ecs

import (
	"github.com/phanxgames/launchpad"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for launchpad interaction
// events. Subscribe to this in your ECS systems to receive pointer, click,
// drag and reorder events.
var InteractionEventType = events.NewEventType[launchpad.InteractionEvent]()

// ReorderEvent reports a committed drag reorder.
type ReorderEvent struct {
	EntityID uint32
	// Keys is the new order of the list's sortable items.
	Keys []string
}

// ReorderEventType carries a ReorderEvent for every EventReorder, in addition
// to the generic interaction event.
var ReorderEventType = events.NewEventType[ReorderEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are queued on the world and delivered by ProcessEvents.
func NewDonburiStore(world donburi.World) launchpad.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event launchpad.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
	if event.Type == launchpad.EventReorder {
		ReorderEventType.Publish(s.world, ReorderEvent{
			EntityID: event.EntityID,
			Keys:     append([]string(nil), event.Keys...),
		})
	}
}
