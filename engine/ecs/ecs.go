// Package ecs hosts camera rigs inside a donburi world.
//
// Each rig lives on an entity carrying RigComponent and PoseComponent. Control
// events are published to ControlEventType addressed to an entity, and the entity
// tagged with ActiveTag receives raw input.
//
// Usage:
//
//	sys := ecs.NewSystem(world)
//	cam := ecs.Spawn(world, r)
//	ecs.SetActive(world, cam)
//	// each tick
//	sys.Update(frame, dt, behavior)
package ecs

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/controller"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// RigData holds the rig driven by an entity.
type RigData struct {
	Rig rig.Rig
}

// ControlEvent addresses control events to the rig on an entity.
type ControlEvent struct {
	Entity donburi.Entity
	Events []controller.Event
}

var (
	// RigComponent attaches a rig to an entity.
	RigComponent = donburi.NewComponentType[RigData]()

	// PoseComponent holds the entity's smoothed pose after the latest Update.
	PoseComponent = donburi.NewComponentType[look.Transform]()

	// ActiveTag marks the entity whose rig receives raw input.
	ActiveTag = donburi.NewTag()

	// ControlEventType carries control events to rig entities. Events are queued on
	// the rig when ProcessEvents runs at the start of System.Update.
	ControlEventType = events.NewEventType[ControlEvent]()
)

var (
	rigQuery    = donburi.NewQuery(filter.Contains(RigComponent))
	activeQuery = donburi.NewQuery(filter.Contains(RigComponent, ActiveTag))
)

// Spawn creates an entity for a rig and seeds its pose.
//
// Parameters:
//   - world: the world to create the entity in
//   - r: the rig
//
// Returns:
//   - donburi.Entity: the new entity
func Spawn(world donburi.World, r rig.Rig) donburi.Entity {
	e := world.Create(RigComponent, PoseComponent)
	entry := world.Entry(e)
	RigComponent.SetValue(entry, RigData{Rig: r})
	PoseComponent.SetValue(entry, r.Smoothed())
	return e
}

// SetActive moves ActiveTag to entity. Passing donburi.Null clears it.
//
// Parameters:
//   - world: the world
//   - entity: the entity to activate
//
// Returns:
//   - bool: false if entity is not a live rig entity
func SetActive(world donburi.World, entity donburi.Entity) bool {
	if entity != donburi.Null && (!world.Valid(entity) || !world.Entry(entity).HasComponent(RigComponent)) {
		return false
	}

	var tagged []*donburi.Entry
	activeQuery.Each(world, func(entry *donburi.Entry) {
		tagged = append(tagged, entry)
	})
	for _, entry := range tagged {
		entry.RemoveComponent(ActiveTag)
	}

	if entity != donburi.Null {
		world.Entry(entity).AddComponent(ActiveTag)
	}
	return true
}

// Active returns the entity tagged active.
//
// Parameters:
//   - world: the world
//
// Returns:
//   - donburi.Entity: the active entity
//   - bool: false if no entity is active
func Active(world donburi.World) (donburi.Entity, bool) {
	entry, ok := activeQuery.First(world)
	if !ok {
		return donburi.Null, false
	}
	return entry.Entity(), true
}

// Send publishes control events for an entity's rig.
//
// Parameters:
//   - world: the world
//   - entity: the target entity
//   - evs: the events
func Send(world donburi.World, entity donburi.Entity, evs ...controller.Event) {
	ControlEventType.Publish(world, ControlEvent{Entity: entity, Events: evs})
}

// System routes control events to rig entities and advances their rigs.
type System struct {
	world donburi.World
}

// NewSystem creates a System for world and subscribes it to ControlEventType.
// Create one System per world.
//
// Parameters:
//   - world: the world
//
// Returns:
//   - *System: the system
func NewSystem(world donburi.World) *System {
	s := &System{world: world}
	ControlEventType.Subscribe(world, s.route)
	return s
}

// route queues an event batch on its entity's rig. Events for missing entities are dropped.
func (s *System) route(w donburi.World, ev ControlEvent) {
	if !w.Valid(ev.Entity) {
		return
	}
	entry := w.Entry(ev.Entity)
	if !entry.HasComponent(RigComponent) {
		return
	}
	RigComponent.Get(entry).Rig.Send(ev.Events...)
}

// Update delivers pending control events, maps raw input onto the active rig when
// behavior allows it, then updates every rig and stores its smoothed pose.
//
// Parameters:
//   - frame: raw input observed during the tick
//   - dt: elapsed time in seconds
//   - behavior: whether default input mapping runs this tick
//
// Returns:
//   - int: the number of rigs updated
func (s *System) Update(frame input.Frame, dt float32, behavior input.Behavior) int {
	ControlEventType.ProcessEvents(s.world)

	if behavior.ShouldConsume() {
		activeQuery.Each(s.world, func(entry *donburi.Entry) {
			RigComponent.Get(entry).Rig.MapInput(frame)
		})
	}

	n := 0
	rigQuery.Each(s.world, func(entry *donburi.Entry) {
		pose := RigComponent.Get(entry).Rig.Update(dt)
		PoseComponent.SetValue(entry, pose)
		n++
	})
	return n
}
