// Package ecs bridges launchpad interaction events into a [Donburi] world.
//
// [NewDonburiStore] publishes every pointer, click, drag and reorder event
// of nodes that carry an EntityID as an [InteractionEventType] event.
// Committed reorders are additionally published as [ReorderEventType], so a
// system can react to a new list order without filtering event types.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
