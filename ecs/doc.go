// Package ecs provides ECS adapters for motion's gesture events.
//
// The primary adapter is [NewDonburiStore], which publishes stage gesture
// events (hover, press, click, focus, view) into a [Donburi] world as typed
// events. Subscribe to [GestureEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	stage.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
