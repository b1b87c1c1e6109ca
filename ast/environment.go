package ast

import (
	"bytes"
)

// Pool is the ordered list of alternatives bound to one name
type Pool []Expression

// Mutable and order preserving map from pool names to non-empty pools. A name is
// present only while its pool has members. Pools are never modified in place, every
// change installs a new slice, so a Copy never shares mutations with its origin.
type (
	poolEntry struct {
		key  string
		pool Pool
	}

	Environment struct {
		entries []*poolEntry
		index   map[string]int
	}
)

// NewEnvironment returns an empty *Environment initialized with given capacity
func NewEnvironment(capacity int) *Environment {
	return &Environment{make([]*poolEntry, 0, capacity), make(map[string]int, capacity)}
}

// Copy returns a copy of this environment. Pools are shared but since they are never
// modified in place, changes to the copy are not visible in the original.
func (e *Environment) Copy() *Environment {
	entries := make([]*poolEntry, len(e.entries))
	for i, pe := range e.entries {
		entries[i] = &poolEntry{pe.key, pe.pool}
	}
	index := make(map[string]int, len(e.index))
	for k, v := range e.index {
		index[k] = v
	}
	return &Environment{entries, index}
}

// EachPair calls the given consumer function once for each name and pool in insertion order
func (e *Environment) EachPair(consumer func(key string, pool Pool)) {
	for _, pe := range e.entries {
		consumer(pe.key, pe.pool)
	}
}

// Equals compares two environments for equality. Environments are equal if they have
// the same names and each name is bound to structurally equal pools, irrespective of
// the order in which the names were entered.
func (e *Environment) Equals(other *Environment) bool {
	if other == nil || len(e.entries) != len(other.entries) {
		return false
	}
	for _, pe := range e.entries {
		oi, ok := other.index[pe.key]
		if !(ok && EqualAll(pe.pool, other.entries[oi].pool)) {
			return false
		}
	}
	return true
}

// Get returns the pool bound to key together with a boolean to indicate if the key was present or not.
// The returned pool must not be modified.
func (e *Environment) Get(key string) (Pool, bool) {
	if p, ok := e.index[key]; ok {
		return e.entries[p].pool, true
	}
	return nil, false
}

// Delete the pool for the given key. Returns the old pool or nil if not found
func (e *Environment) Delete(key string) (oldPool Pool) {
	p, ok := e.index[key]
	if !ok {
		return nil
	}
	oldPool = e.entries[p].pool
	delete(e.index, key)
	for k, v := range e.index {
		if v > p {
			e.index[k] = v - 1
		}
	}
	ne := make([]*poolEntry, 0, len(e.entries)-1)
	ne = append(ne, e.entries[:p]...)
	e.entries = append(ne, e.entries[p+1:]...)
	return
}

// Includes returns true if the environment has a pool for the given key
func (e *Environment) Includes(key string) bool {
	_, ok := e.index[key]
	return ok
}

// IsEmpty returns true if the environment has no pools
func (e *Environment) IsEmpty() bool {
	return len(e.entries) == 0
}

// Keys returns the pool names in the order that they were first entered
func (e *Environment) Keys() []string {
	keys := make([]string, len(e.entries))
	for i, pe := range e.entries {
		keys[i] = pe.key
	}
	return keys
}

// Put binds key to a copy of the given pool, replacing any previous binding. Putting
// an empty pool deletes the key.
func (e *Environment) Put(key string, pool Pool) {
	if len(pool) == 0 {
		e.Delete(key)
		return
	}
	pool = append(make(Pool, 0, len(pool)), pool...)
	if p, ok := e.index[key]; ok {
		e.entries[p].pool = pool
	} else {
		e.index[key] = len(e.entries)
		e.entries = append(e.entries, &poolEntry{key, pool})
	}
}

// Remove takes the member at index out of the pool bound to key and returns it. The
// key is deleted when its last member is removed. Remove panics if the key is missing
// or the index is out of range.
func (e *Environment) Remove(key string, index int) Expression {
	p, ok := e.index[key]
	if !ok {
		panic(`attempt to remove from a pool that doesn't exist: ` + key)
	}
	pe := e.entries[p]
	item := pe.pool[index]
	if len(pe.pool) == 1 {
		e.Delete(key)
		return item
	}
	np := make(Pool, 0, len(pe.pool)-1)
	np = append(np, pe.pool[:index]...)
	pe.pool = append(np, pe.pool[index+1:]...)
	return item
}

// Len returns the number of pools in the environment
func (e *Environment) Len() int {
	return len(e.entries)
}

func (e *Environment) String() string {
	b := bytes.NewBufferString(`{`)
	for i, pe := range e.entries {
		if i > 0 {
			b.WriteString(`, `)
		}
		b.WriteString(pe.key)
		b.WriteString(` => [`)
		for j, item := range pe.pool {
			if j > 0 {
				b.WriteString(` | `)
			}
			b.WriteString(item.String())
		}
		b.WriteByte(']')
	}
	b.WriteByte('}')
	return b.String()
}
