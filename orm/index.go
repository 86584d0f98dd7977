package orm

import (
	"bytes"
	"sort"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

// Indexer derives the index value of an object. Objects with a nil value
// are left out of the index.
type Indexer func(Object) ([]byte, error)

// Index maps a derived value to primary keys. A unique index stores the
// key itself; otherwise a MultiRef holds every key sharing the value.
type Index struct {
	name   string
	prefix []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ xswap.QueryHandler = Index{}

// NewIndex creates an index stored under "_i.<name>:". refKey turns a
// primary key into the db key of the indexed record.
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		prefix: []byte("_i." + name + ":"),
		unique: unique,
		index:  indexer,
		refKey: refKey,
	}
}

func (i Index) Name() string {
	return i.name
}

// IndexKey returns the db key holding the refs of value.
func (i Index) IndexKey(value []byte) []byte {
	out := make([]byte, 0, len(i.prefix)+len(value))
	return append(append(out, i.prefix...), value...)
}

// Update moves the entry of an object from its prev state to next. A nil
// prev inserts and a nil next removes. The primary key cannot change.
func (i Index) Update(db xswap.KVStore, prev, next Object) error {
	if prev == nil && next == nil {
		return errors.Wrap(errors.ErrHuman, "index update without objects")
	}
	var from, to []byte
	var err error
	if prev != nil {
		if from, err = i.index(prev); err != nil {
			return err
		}
	}
	if next != nil {
		if to, err = i.index(next); err != nil {
			return err
		}
	}
	if prev != nil && next != nil {
		if !bytes.Equal(prev.Key(), next.Key()) {
			return errors.Wrap(errors.ErrImmutable, "primary key")
		}
		if bytes.Equal(from, to) {
			return nil
		}
	}
	// Check first so a failed insert leaves the old entry in place.
	if i.unique && len(to) > 0 && db.Has(i.IndexKey(to)) {
		return errors.Wrap(errors.ErrDuplicate, i.name)
	}
	if prev != nil {
		if err := i.remove(db, from, prev.Key()); err != nil {
			return err
		}
	}
	if next != nil {
		return i.insert(db, to, next.Key())
	}
	return nil
}

// GetAt returns the primary keys stored for value.
func (i Index) GetAt(db xswap.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw := db.Get(i.IndexKey(value))
	if raw == nil {
		return nil, nil
	}
	return i.refs(raw)
}

// GetLike returns the primary keys of the objects indexed like pattern.
func (i Index) GetLike(db xswap.ReadOnlyKVStore, pattern Object) ([][]byte, error) {
	value, err := i.index(pattern)
	if err != nil {
		return nil, err
	}
	return i.GetAt(db, value)
}

// Query returns the indexed records, not the index entries.
func (i Index) Query(db xswap.ReadOnlyKVStore, mod string, data []byte) ([]xswap.Model, error) {
	var refs [][]byte
	switch mod {
	case xswap.KeyQueryMod:
		found, err := i.GetAt(db, data)
		if err != nil {
			return nil, err
		}
		refs = found
	case xswap.PrefixQueryMod:
		for _, entry := range queryPrefix(db, i.IndexKey(data)) {
			found, err := i.refs(entry.Value)
			if err != nil {
				return nil, err
			}
			refs = append(refs, found...)
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}

	res := make([]xswap.Model, 0, len(refs))
	for _, ref := range refs {
		key := i.refKey(ref)
		if value := db.Get(key); value != nil {
			res = append(res, xswap.Pair(key, value))
		}
	}
	return res, nil
}

func (i Index) refs(raw []byte) ([][]byte, error) {
	if i.unique {
		return [][]byte{raw}, nil
	}
	var m MultiRef
	if err := m.Unmarshal(raw); err != nil {
		return nil, err
	}
	return m.Refs, nil
}

func (i Index) insert(db xswap.KVStore, value, pk []byte) error {
	if len(value) == 0 {
		return nil
	}
	key := i.IndexKey(value)
	if i.unique {
		if db.Has(key) {
			return errors.Wrap(errors.ErrDuplicate, i.name)
		}
		db.Set(key, pk)
		return nil
	}
	return i.editRefs(db, key, func(m *MultiRef) error { return m.Add(pk) })
}

func (i Index) remove(db xswap.KVStore, value, pk []byte) error {
	if len(value) == 0 {
		return nil
	}
	key := i.IndexKey(value)
	if i.unique {
		if !bytes.Equal(db.Get(key), pk) {
			return errors.Wrapf(errors.ErrNotFound, "%s entry", i.name)
		}
		db.Delete(key)
		return nil
	}
	return i.editRefs(db, key, func(m *MultiRef) error { return m.Remove(pk) })
}

// editRefs applies fn to the MultiRef at key and writes the result back,
// deleting the entry once it is empty.
func (i Index) editRefs(db xswap.KVStore, key []byte, fn func(*MultiRef) error) error {
	var m MultiRef
	if raw := db.Get(key); raw != nil {
		if err := m.Unmarshal(raw); err != nil {
			return err
		}
	}
	if err := fn(&m); err != nil {
		return errors.Wrap(err, i.name)
	}
	if m.Size() == 0 {
		db.Delete(key)
		return nil
	}
	raw, err := m.Marshal()
	if err != nil {
		return err
	}
	db.Set(key, raw)
	return nil
}

// MultiRef is a sorted set of primary keys.
type MultiRef struct {
	Refs [][]byte
}

var _ Model = (*MultiRef)(nil)

// NewMultiRef returns a set holding refs. Duplicates are an error.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	var m MultiRef
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func (m *MultiRef) search(ref []byte) (int, bool) {
	n := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return n, n < len(m.Refs) && bytes.Equal(m.Refs[n], ref)
}

func (m *MultiRef) Add(ref []byte) error {
	at, found := m.search(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[at+1:], m.Refs[at:])
	m.Refs[at] = ref
	return nil
}

func (m *MultiRef) Remove(ref []byte) error {
	at, found := m.search(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	m.Refs = append(m.Refs[:at], m.Refs[at+1:]...)
	return nil
}

func (m *MultiRef) Size() int {
	return len(m.Refs)
}

func (m *MultiRef) Validate() error {
	if len(m.Refs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no references")
	}
	return nil
}

func (m *MultiRef) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(m)
}

func (m *MultiRef) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, m)
}
