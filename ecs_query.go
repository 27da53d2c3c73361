package cornellbox

import (
	"reflect"
)

// Queries iterate every entity owning all of the listed component types, in
// archetype creation order and then row order. The callback receives pointers
// into component storage; returning false stops the iteration.
//
// Structural changes must go through Commands while a query is running.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }

func (q Query1[A]) Map(m func(EntityId, *A) bool) {
	id1 := identifyComponent[A](q.ecs)

	for _, arch := range q.ecs.archetypes {
		comps1, ok := column[A](arch, id1)
		if !ok {
			continue
		}

		for row, entityId := range arch.entities {
			if !m(entityId, &comps1[row]) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool) {
	id1 := identifyComponent[A](q.ecs)
	id2 := identifyComponent[B](q.ecs)

	for _, arch := range q.ecs.archetypes {
		comps1, ok1 := column[A](arch, id1)
		comps2, ok2 := column[B](arch, id2)
		if !ok1 || !ok2 {
			continue
		}

		for row, entityId := range arch.entities {
			if !m(entityId, &comps1[row], &comps2[row]) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool) {
	id1 := identifyComponent[A](q.ecs)
	id2 := identifyComponent[B](q.ecs)
	id3 := identifyComponent[C](q.ecs)

	for _, arch := range q.ecs.archetypes {
		comps1, ok1 := column[A](arch, id1)
		comps2, ok2 := column[B](arch, id2)
		comps3, ok3 := column[C](arch, id3)
		if !ok1 || !ok2 || !ok3 {
			continue
		}

		for row, entityId := range arch.entities {
			if !m(entityId, &comps1[row], &comps2[row], &comps3[row]) {
				return
			}
		}
	}
}

// Count returns the number of entities matching the query.
func (q Query1[A]) Count() int {
	n := 0
	q.Map(func(EntityId, *A) bool {
		n++
		return true
	})
	return n
}

// GetComponent returns a pointer to the entity's component of type A.
// The pointer is only valid until the next structural change.
func GetComponent[A any](cmd *Commands, entityId EntityId) (*A, bool) {
	ecs := cmd.app.ecs
	loc, ok := ecs.entityIndex[entityId]
	if !ok {
		return nil, false
	}

	comps, ok := column[A](loc.arch, identifyComponent[A](ecs))
	if !ok {
		return nil, false
	}
	return &comps[loc.row], true
}

func column[A any](arch *archetype, id componentId) ([]A, bool) {
	data, ok := arch.componentData[id]
	if !ok {
		return nil, false
	}
	return data.([]A), true
}

func identifyComponent[A any](ecs *Ecs) componentId {
	return ecs.getComponentId(reflect.TypeOf((*A)(nil)).Elem())
}
