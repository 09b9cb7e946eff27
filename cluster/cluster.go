// Package cluster holds the mention-to-entity partition that every resolver
// builds. Entities live in an arena addressed by stable integer IDs; a single
// mention→entity table is the only place membership is recorded, and Merge is
// the one primitive allowed to move mentions between entities.
package cluster

import (
	"sort"

	"github.com/teranos/coref/doc"
	"github.com/teranos/coref/errors"
)

// EntityID addresses an entity in a Registry's arena.
type EntityID int

const unassigned EntityID = -1

// Entity is one coreference cluster.
type Entity struct {
	ID      EntityID
	members map[int]*doc.Mention
	retired bool
}

// Mentions returns the members in document order.
func (e *Entity) Mentions() []*doc.Mention {
	out := make([]*doc.Mention, 0, len(e.members))
	for _, m := range e.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Len returns the number of members.
func (e *Entity) Len() int { return len(e.members) }

// Contains reports membership.
func (e *Entity) Contains(m *doc.Mention) bool {
	_, ok := e.members[m.Index]
	return ok
}

// Retired reports whether the entity was absorbed by a merge.
func (e *Entity) Retired() bool { return e.retired }

// ClusteredMention is the receipt of an assignment.
type ClusteredMention struct {
	Mention *doc.Mention
	Entity  *Entity
}

// Registry is the cluster state of one document.
type Registry struct {
	mentions []*doc.Mention
	assign   []EntityID
	entities []*Entity
	live     int
}

// NewRegistry returns an empty registry for d; no mention is assigned yet.
func NewRegistry(d *doc.Document) *Registry {
	r := &Registry{
		mentions: d.Mentions,
		assign:   make([]EntityID, len(d.Mentions)),
	}
	for i := range r.assign {
		r.assign[i] = unassigned
	}
	return r
}

// MarkSingleton creates a new entity holding only m.
func (r *Registry) MarkSingleton(m *doc.Mention) ClusteredMention {
	if r.assign[m.Index] != unassigned {
		r.RemoveCoreference(m)
	}
	e := &Entity{ID: EntityID(len(r.entities)), members: map[int]*doc.Mention{m.Index: m}}
	r.entities = append(r.entities, e)
	r.live++
	r.assign[m.Index] = e.ID
	return ClusteredMention{Mention: m, Entity: e}
}

// MarkCoreferent adds m to the live entity id. Adding a member again is a
// no-op.
func (r *Registry) MarkCoreferent(m *doc.Mention, id EntityID) ClusteredMention {
	e := r.liveEntity(id)
	if current := r.assign[m.Index]; current != unassigned && current != id {
		r.RemoveCoreference(m)
	}
	e.members[m.Index] = m
	r.assign[m.Index] = id
	return ClusteredMention{Mention: m, Entity: e}
}

// RemoveCoreference detaches m from its entity. An entity left empty is
// retired. Only Merge and reassignment use this.
func (r *Registry) RemoveCoreference(m *doc.Mention) {
	id := r.assign[m.Index]
	if id == unassigned {
		return
	}
	e := r.entities[id]
	delete(e.members, m.Index)
	r.assign[m.Index] = unassigned
	if len(e.members) == 0 && !e.retired {
		e.retired = true
		r.live--
	}
}

// Merge moves every member of e2 into e1 and retires e2. Merging an entity
// with itself does nothing.
func (r *Registry) Merge(e1, e2 EntityID) {
	if e1 == e2 {
		return
	}
	target := r.liveEntity(e1)
	absorbed := r.liveEntity(e2)
	for _, m := range absorbed.Mentions() {
		r.RemoveCoreference(m)
		target.members[m.Index] = m
		r.assign[m.Index] = e1
	}
	if !absorbed.retired {
		absorbed.retired = true
		r.live--
	}
}

// MergeMentions merges the entities of m1 and m2, keeping m1's. It reports
// whether anything changed.
func (r *Registry) MergeMentions(m1, m2 *doc.Mention) bool {
	e1, e2 := r.EntityOf(m1), r.EntityOf(m2)
	if e1 == e2 {
		return false
	}
	r.Merge(e1, e2)
	return true
}

// EntityOf returns the entity of m. Reading a mention that was never
// assigned is a programming error and panics.
func (r *Registry) EntityOf(m *doc.Mention) EntityID {
	id := r.assign[m.Index]
	if id == unassigned {
		panic(errors.AssertionFailedf("mention %d (%q) read before assignment", m.Index, m.Gloss()))
	}
	return id
}

// Entity returns the entity with the given id.
func (r *Registry) Entity(id EntityID) *Entity {
	return r.entities[id]
}

// Clustered returns the current receipt for m.
func (r *Registry) Clustered(m *doc.Mention) ClusteredMention {
	return ClusteredMention{Mention: m, Entity: r.entities[r.EntityOf(m)]}
}

// Same reports whether two mentions share an entity.
func (r *Registry) Same(m1, m2 *doc.Mention) bool {
	return r.EntityOf(m1) == r.EntityOf(m2)
}

// Live returns the live entities in creation order.
func (r *Registry) Live() []*Entity {
	out := make([]*Entity, 0, r.live)
	for _, e := range r.entities {
		if !e.retired {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of live entities.
func (r *Registry) Len() int { return r.live }

// Assignments returns one receipt per mention in document order.
func (r *Registry) Assignments() []ClusteredMention {
	out := make([]ClusteredMention, len(r.mentions))
	for i, m := range r.mentions {
		out[i] = r.Clustered(m)
	}
	return out
}

func (r *Registry) liveEntity(id EntityID) *Entity {
	if id < 0 || int(id) >= len(r.entities) {
		panic(errors.AssertionFailedf("entity %d does not exist", id))
	}
	e := r.entities[id]
	if e.retired {
		panic(errors.AssertionFailedf("entity %d is retired", id))
	}
	return e
}
