package values

import (
	"strings"

	"github.com/dolthub/swiss"
)

// Object is a mutable-in-place mapping from string keys to values that
// preserves insertion order for key enumeration. Unlike the teacher's
// machine.Map, which is a bare swiss.Map[Value,Value] with no ordering
// guarantee, Object layers a swiss.Map[string,int] index (key -> slot in
// entries) over an append-only entries slice, so enumeration walks entries
// in insertion order while lookup, assignment and deletion stay O(1)
// amortized.
type Object struct {
	index   *swiss.Map[string, int]
	entries []objectEntry
}

type objectEntry struct {
	key     string
	value   Value
	deleted bool
}

// NewObject returns an empty object with initial capacity for size entries.
func NewObject(size int) *Object {
	if size < 0 {
		size = 0
	}
	return &Object{index: swiss.NewMap[string, int](uint32(size))}
}

func (o *Object) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	o.Range(func(k string, v Value) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(v.String())
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}
func (o *Object) Type() string { return "object" }
func (o *Object) Truth() bool  { return true }

// Get returns the value bound to key, or (NullValue, false) if absent.
func (o *Object) Get(key string) (Value, bool) {
	slot, ok := o.index.Get(key)
	if !ok || o.entries[slot].deleted {
		return NullValue, false
	}
	return o.entries[slot].value, true
}

// Set inserts or updates the binding for key. Updating an existing key keeps
// its original position in enumeration order.
func (o *Object) Set(key string, v Value) {
	if slot, ok := o.index.Get(key); ok && !o.entries[slot].deleted {
		o.entries[slot].value = v
		return
	}
	slot := len(o.entries)
	o.entries = append(o.entries, objectEntry{key: key, value: v})
	o.index.Put(key, slot)
}

// Delete removes key, if present.
func (o *Object) Delete(key string) {
	slot, ok := o.index.Get(key)
	if !ok {
		return
	}
	o.entries[slot].deleted = true
	o.index.Delete(key)
}

// Len returns the number of live (non-deleted) entries.
func (o *Object) Len() int {
	n := 0
	for _, e := range o.entries {
		if !e.deleted {
			n++
		}
	}
	return n
}

// Range calls fn for each live entry in insertion order, stopping early if
// fn returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	for _, e := range o.entries {
		if e.deleted {
			continue
		}
		if !fn(e.key, e.value) {
			return
		}
	}
}

// Keys returns the live keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.entries))
	o.Range(func(k string, _ Value) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}
