package config

// Dictionary is an insertion-ordered string-keyed map of Values, the
// container that backs both a level's static configuration and a
// character's live/default config pair.
type Dictionary struct {
	values map[string]Value
	keys   []string
}

// NewDictionary returns an empty Dictionary.
func NewDictionary() Dictionary {
	return Dictionary{values: map[string]Value{}}
}

// Get returns the value at key and whether it was present.
func (d Dictionary) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set inserts or overwrites key, preserving original insertion order
// on overwrite.
func (d *Dictionary) Set(key string, v Value) {
	if d.values == nil {
		d.values = map[string]Value{}
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Delete removes key, if present.
func (d *Dictionary) Delete(key string) {
	if _, exists := d.values[key]; !exists {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (d Dictionary) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of entries.
func (d Dictionary) Len() int { return len(d.keys) }

// Clone returns an independent deep copy.
func (d Dictionary) Clone() Dictionary {
	out := NewDictionary()
	for _, k := range d.keys {
		out.Set(k, d.values[k].deepCopy())
	}
	return out
}

// Equal reports whether d and o have the same keys (in any order) with
// equal values.
func (d Dictionary) Equal(o Dictionary) bool {
	if len(d.keys) != len(o.keys) {
		return false
	}
	for k, v := range d.values {
		ov, ok := o.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Snapshot returns a deep-copied Dictionary capturing the current state
// — used to remember a character's default config before a power-up
// overlays it.
func (d Dictionary) Snapshot() Dictionary {
	return d.Clone()
}

// RestoreFrom overlays every touched key from snapshot back onto d,
// deleting any touched key that has no counterpart in snapshot — the
// power-up deactivation rule: restore from the default snapshot when a
// default exists, remove the override otherwise.
func (d *Dictionary) RestoreFrom(snapshot Dictionary, touchedKeys []string) {
	for _, key := range touchedKeys {
		if v, ok := snapshot.Get(key); ok {
			d.Set(key, v)
		} else {
			d.Delete(key)
		}
	}
}
