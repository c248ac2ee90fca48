package runtime

// DynProps is the per-instance dynamic property table: an insertion-ordered
// mapping from string keys to values with an enumerable flag per entry.
// Indices are stable across updates; deletion tombstones the entry so
// preceding indices never renumber, and enumeration visits entries in
// first-inserted order.
//
// Concurrency contract: single writer, multiple readers. The table belongs
// to exactly one object and mutation is serialized by whoever owns that
// object; concurrent readers may observe any prefix of insertions.
type DynProps struct {
	entries []dynEntry
	index   map[string]int32
}

type dynEntry struct {
	name       string
	value      Any
	enumerable bool
	deleted    bool
}

// NewDynProps creates an empty table.
func NewDynProps() *DynProps {
	return &DynProps{index: make(map[string]int32)}
}

// Len returns the number of slots, tombstones included. Valid cursor
// positions are 0..Len()-1.
func (d *DynProps) Len() int32 {
	return int32(len(d.entries))
}

// GetIndex returns the slot index for key, or -1 if absent.
func (d *DynProps) GetIndex(key string) int32 {
	i, ok := d.index[key]
	if !ok {
		return -1
	}
	return i
}

// TryGetValue returns the value for key.
func (d *DynProps) TryGetValue(key string) (Any, bool) {
	i, ok := d.index[key]
	if !ok {
		return Any{}, false
	}
	return d.entries[i].value, true
}

// Set creates or updates the entry for key. Updates keep the original
// insertion index; new entries default to enumerable.
func (d *DynProps) Set(key string, value Any) {
	d.SetWithEnumerable(key, value, true)
}

// SetWithEnumerable creates or updates the entry for key with an explicit
// enumerable flag for the create case. Updating never changes the flag.
func (d *DynProps) SetWithEnumerable(key string, value Any, enumerable bool) {
	if i, ok := d.index[key]; ok {
		d.entries[i].value = value
		return
	}
	d.index[key] = int32(len(d.entries))
	d.entries = append(d.entries, dynEntry{name: key, value: value, enumerable: enumerable})
}

// Delete tombstones the entry for key. Reports whether a live entry was
// removed. A later Set of the same key appends a fresh slot.
func (d *DynProps) Delete(key string) bool {
	i, ok := d.index[key]
	if !ok {
		return false
	}
	d.entries[i].deleted = true
	d.entries[i].value = Any{}
	delete(d.index, key)
	return true
}

// IsEnumerable reports the enumerable flag for key.
func (d *DynProps) IsEnumerable(key string) bool {
	i, ok := d.index[key]
	return ok && d.entries[i].enumerable
}

// SetEnumerable updates the enumerable flag for an existing key.
func (d *DynProps) SetEnumerable(key string, enumerable bool) {
	if i, ok := d.index[key]; ok {
		d.entries[i].enumerable = enumerable
	}
}

// NextEnumerableIndexAfter returns the slot index of the first live,
// enumerable entry after i, or -1 when exhausted. Pass -1 to start.
func (d *DynProps) NextEnumerableIndexAfter(i int32) int32 {
	for j := i + 1; j < int32(len(d.entries)); j++ {
		e := &d.entries[j]
		if !e.deleted && e.enumerable {
			return j
		}
	}
	return -1
}

// NameAt returns the key stored at slot i, or "" for a tombstone.
func (d *DynProps) NameAt(i int32) string {
	if i < 0 || i >= int32(len(d.entries)) || d.entries[i].deleted {
		return ""
	}
	return d.entries[i].name
}

// ValueAt returns the value stored at slot i.
func (d *DynProps) ValueAt(i int32) Any {
	if i < 0 || i >= int32(len(d.entries)) || d.entries[i].deleted {
		return Any{}
	}
	return d.entries[i].value
}
