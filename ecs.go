package cornellbox

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"reflect"
	"slices"
	"sync"
)

type EntityId uint64
type archetypeId uint64
type archetypeKey []componentId
type componentId uint32
type set[T comparable] = map[T]struct{}

type Ecs struct {
	// archetypes keeps creation order so queries iterate deterministically.
	archetypes    []*archetype
	archetypeById map[archetypeId]*archetype
	entityIndex   map[EntityId]entityLocation

	idGeneratorLock sync.Mutex
	entityIdCounter EntityId

	componentIdCounterLock sync.Mutex
	componentIdCounter     componentId
	componentTypeIdMap     map[reflect.Type]componentId
	componentIdTypeMap     map[componentId]reflect.Type
}

type entityLocation struct {
	arch *archetype
	row  int
}

// archetype stores every entity sharing one exact component set.
// Row i of every column belongs to entities[i].
type archetype struct {
	id            archetypeId
	key           archetypeKey
	entities      []EntityId
	componentData map[componentId]any // typed slices via reflection
}

func MakeEcs() Ecs {
	return Ecs{
		archetypeById:      make(map[archetypeId]*archetype),
		entityIndex:        make(map[EntityId]entityLocation),
		componentTypeIdMap: make(map[reflect.Type]componentId),
		componentIdTypeMap: make(map[componentId]reflect.Type),
	}
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	return ecs.insertEntity(ecs.nextEntityId(), components...)
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	arch := ecs.getOrMakeArchetype(ecs.getArchetypeKey(components...))

	row := ecs.archetypeAppendRow(arch, entityId)
	for _, component := range components {
		ecs.writeComponent(arch, row, component)
	}

	ecs.entityIndex[entityId] = entityLocation{arch: arch, row: row}
	return entityId
}

func (ecs *Ecs) hasEntity(entityId EntityId) bool {
	_, ok := ecs.entityIndex[entityId]
	return ok
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	loc, ok := ecs.entityIndex[entityId]
	if !ok {
		return
	}
	ecs.archetypeRemoveRow(loc.arch, loc.row)
	delete(ecs.entityIndex, entityId)
}

func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	src, ok := ecs.entityIndex[entityId]
	if !ok {
		panic(fmt.Sprintf("entity %d does not exist", entityId))
	}

	dstKey := combineArchetypeKeys(src.arch.key, ecs.getArchetypeKey(components...))
	dstArch := ecs.getOrMakeArchetype(dstKey)

	// Overwrite in place when the component set does not change.
	if dstArch == src.arch {
		for _, component := range components {
			ecs.writeComponent(dstArch, src.row, component)
		}
		return
	}

	dstRow := ecs.archetypeAppendRow(dstArch, entityId)
	ecs.copySharedComponents(src.arch, src.row, dstArch, dstRow)
	for _, component := range components {
		ecs.writeComponent(dstArch, dstRow, component)
	}

	ecs.archetypeRemoveRow(src.arch, src.row)
	ecs.entityIndex[entityId] = entityLocation{arch: dstArch, row: dstRow}
}

// components returns copies of every component attached to the entity.
func (ecs *Ecs) components(entityId EntityId) []any {
	loc, ok := ecs.entityIndex[entityId]
	if !ok {
		return nil
	}

	res := make([]any, 0, len(loc.arch.key))
	for _, compId := range loc.arch.key {
		res = append(res, reflectSliceGet(loc.arch.componentData[compId], loc.row).Interface())
	}
	return res
}

func (ecs *Ecs) copySharedComponents(srcArch *archetype, srcRow int, dstArch *archetype, dstRow int) {
	for _, compId := range srcArch.key {
		dstData, ok := dstArch.componentData[compId]
		if !ok {
			continue
		}
		reflectSliceSet(dstData, dstRow, reflectSliceGet(srcArch.componentData[compId], srcRow))
	}
}

func (ecs *Ecs) writeComponent(dstArch *archetype, dstRow int, component any) {
	componentType, value := componentTypeAndValue(component)
	reflectSliceSet(dstArch.componentData[ecs.getComponentId(componentType)], dstRow, value)
}

func (ecs *Ecs) archetypeAppendRow(arch *archetype, entityId EntityId) int {
	for _, compId := range arch.key {
		arch.componentData[compId] = reflectSliceAppend(
			arch.componentData[compId],
			reflect.Zero(ecs.componentIdTypeMap[compId]),
		)
	}
	arch.entities = append(arch.entities, entityId)
	return len(arch.entities) - 1
}

// archetypeRemoveRow swaps the last row into the freed slot so columns stay dense.
func (ecs *Ecs) archetypeRemoveRow(arch *archetype, row int) {
	last := len(arch.entities) - 1

	for compId, data := range arch.componentData {
		if row != last {
			reflectSliceSet(data, row, reflectSliceGet(data, last))
		}
		arch.componentData[compId] = reflectSliceTruncate(data, last)
	}

	moved := arch.entities[last]
	arch.entities[row] = moved
	arch.entities = arch.entities[:last]

	if row != last {
		ecs.entityIndex[moved] = entityLocation{arch: arch, row: row}
	}
}

func (ecs *Ecs) getOrMakeArchetype(key archetypeKey) *archetype {
	id := getArchetypeId(key)

	if arch, ok := ecs.archetypeById[id]; ok {
		return arch
	}

	arch := &archetype{
		id:            id,
		key:           key,
		componentData: make(map[componentId]any, len(key)),
	}
	for _, compId := range key {
		arch.componentData[compId] = reflectSliceMake(ecs.componentIdTypeMap[compId])
	}

	ecs.archetypeById[id] = arch
	ecs.archetypes = append(ecs.archetypes, arch)
	return arch
}

// getArchetypeKey returns the sorted, deduplicated component ids of the given components.
// The archetype id is a hash of that key; collisions are not handled.
func (ecs *Ecs) getArchetypeKey(components ...any) archetypeKey {
	res := make(archetypeKey, 0, len(components))
	for _, component := range components {
		componentType, _ := componentTypeAndValue(component)
		res = append(res, ecs.getComponentId(componentType))
	}
	return dedupAndSortArchetypeKey(res)
}

func componentTypeAndValue(component any) (reflect.Type, reflect.Value) {
	componentType := reflect.TypeOf(component)
	value := reflect.ValueOf(component)

	if componentType != nil && componentType.Kind() == reflect.Pointer {
		componentType = componentType.Elem()
		value = value.Elem()
	}
	if componentType == nil || componentType.Kind() != reflect.Struct {
		panic(fmt.Errorf("expected component to be a struct or a pointer to a struct, got %T", component))
	}
	return componentType, value
}

func combineArchetypeKeys(a archetypeKey, b archetypeKey) archetypeKey {
	combined := make(archetypeKey, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	return dedupAndSortArchetypeKey(combined)
}

func dedupAndSortArchetypeKey(key archetypeKey) archetypeKey {
	dedup := make(set[componentId], len(key))
	res := make(archetypeKey, 0, len(key))

	for _, v := range key {
		if _, seen := dedup[v]; seen {
			continue
		}
		dedup[v] = struct{}{}
		res = append(res, v)
	}

	slices.Sort(res)
	return res
}

func getArchetypeId(key archetypeKey) archetypeId {
	hash := fnv.New64a()
	b := make([]byte, 8)
	for _, compId := range key {
		binary.LittleEndian.PutUint64(b, uint64(compId))
		hash.Write(b)
	}
	return archetypeId(hash.Sum64())
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idGeneratorLock.Lock()
	defer ecs.idGeneratorLock.Unlock()

	id := ecs.entityIdCounter
	ecs.entityIdCounter += 1
	return id
}

func (ecs *Ecs) getComponentId(componentType reflect.Type) componentId {
	ecs.componentIdCounterLock.Lock()
	defer ecs.componentIdCounterLock.Unlock()

	if id, ok := ecs.componentTypeIdMap[componentType]; ok {
		return id
	}

	id := ecs.componentIdCounter
	ecs.componentIdCounter += 1

	ecs.componentTypeIdMap[componentType] = id
	ecs.componentIdTypeMap[id] = componentType
	return id
}

func (ecs *Ecs) getComponentType(compId componentId) reflect.Type {
	if t, ok := ecs.componentIdTypeMap[compId]; ok {
		return t
	}
	panic("ComponentID not registered")
}
