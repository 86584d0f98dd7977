package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

// SeqID names the default id sequence of a bucket.
const SeqID = "id"

var validBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is the storage of one kind of record. Embed it in a type that
// exposes typed accessors.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Index
}

var _ xswap.QueryHandler = Bucket{}

// NewBucket panics on a name that is not 3 to 10 lowercase letters or
// underscores.
func NewBucket(name string, proto Cloneable) Bucket {
	if !validBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":"), proto: proto}
}

func (b Bucket) Name() string {
	return b.name
}

// WithIndex returns a copy of the bucket that also maintains the named
// index. Registering the same name twice panics.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("index %q registered twice on %q", name, b.name))
	}
	indexes := map[string]Index{
		name: NewIndex(b.name+"_"+name, indexer, unique, b.DBKey),
	}
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	b.indexes = indexes
	return b
}

// Sequence returns the named counter of this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// Register exposes the bucket at "/<name>" and each index at
// "/<name>/<index>". An empty name falls back to the bucket name.
func (b Bucket) Register(name string, r xswap.QueryRouter) {
	if name == "" {
		name = b.name
	}
	path := "/" + name
	r.Register(path, b)
	for n, idx := range b.indexes {
		r.Register(path+"/"+n, idx)
	}
}

func (b Bucket) Query(db xswap.ReadOnlyKVStore, mod string, data []byte) ([]xswap.Model, error) {
	switch mod {
	case xswap.KeyQueryMod:
		key := b.DBKey(data)
		if value := db.Get(key); value != nil {
			return []xswap.Model{xswap.Pair(key, value)}, nil
		}
		return nil, nil
	case xswap.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data)), nil
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
}

// DBKey returns a freshly allocated prefixed key.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

// Get returns nil, nil when nothing is stored under key.
func (b Bucket) Get(db xswap.ReadOnlyKVStore, key []byte) (Object, error) {
	raw := db.Get(b.DBKey(key))
	if raw == nil {
		return nil, nil
	}
	return b.Parse(key, raw)
}

func (b Bucket) Has(db xswap.ReadOnlyKVStore, key []byte) bool {
	return db.Has(b.DBKey(key))
}

// Parse decodes a stored value into a new object.
func (b Bucket) Parse(key, raw []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "%s: cannot unmarshal", b.name)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates obj, refreshes the indexes and writes it.
func (b Bucket) Save(db xswap.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return errors.Wrapf(err, "%s: cannot marshal", b.name)
	}
	if err := b.reindex(db, obj.Key(), obj); err != nil {
		return err
	}
	db.Set(b.DBKey(obj.Key()), raw)
	return nil
}

func (b Bucket) Delete(db xswap.KVStore, key []byte) error {
	if err := b.reindex(db, key, nil); err != nil {
		return err
	}
	db.Delete(b.DBKey(key))
	return nil
}

// reindex moves every index entry of key from its stored state to next.
// A nil next removes the entries.
func (b Bucket) reindex(db xswap.KVStore, key []byte, next Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && next == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, next); err != nil {
			return err
		}
	}
	return nil
}

// GetIndexed returns the objects the named index holds for key.
func (b Bucket) GetIndexed(db xswap.ReadOnlyKVStore, name string, key []byte) ([]Object, error) {
	idx, err := b.index(name)
	if err != nil {
		return nil, err
	}
	refs, err := idx.GetAt(db, key)
	if err != nil {
		return nil, err
	}
	return b.load(db, refs)
}

// GetIndexedLike returns the objects indexed like pattern.
func (b Bucket) GetIndexedLike(db xswap.ReadOnlyKVStore, name string, pattern Object) ([]Object, error) {
	idx, err := b.index(name)
	if err != nil {
		return nil, err
	}
	refs, err := idx.GetLike(db, pattern)
	if err != nil {
		return nil, err
	}
	return b.load(db, refs)
}

func (b Bucket) index(name string) (Index, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return Index{}, errors.Wrapf(ErrInvalidIndex, "%s has no index %q", b.name, name)
	}
	return idx, nil
}

func (b Bucket) load(db xswap.ReadOnlyKVStore, keys [][]byte) ([]Object, error) {
	var objs []Object
	for _, key := range keys {
		obj, err := b.Get(db, key)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}
