package xswap

// KVStore is the storage abstraction every extension works with. Keys are
// ordered lexicographically. Implementations panic on a nil key.
type KVStore interface {
	ReadOnlyKVStore

	// Set writes the value under the key, replacing any previous one.
	Set(key, value []byte)

	// Delete removes the key. Deleting a missing key is a no-op.
	Delete(key []byte)
}

// ReadOnlyKVStore is the subset of KVStore used by queries.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist.
	Get(key []byte) []byte

	// Has checks if a key exists.
	Has(key []byte) bool

	// Iterator over a domain of keys in ascending order. End is exclusive,
	// a nil end means no upper bound.
	// No writes may happen within a domain while an iterator exists over it.
	Iterator(start, end []byte) Iterator

	// ReverseIterator walks the same domain as Iterator in descending
	// order.
	ReverseIterator(start, end []byte) Iterator
}

/*
Iterator allows us to access a set of items within a range of
keys.

	var itr Iterator = ...
	defer itr.Close()

	for ; itr.Valid(); itr.Next() {
	  k, v := itr.Key(), itr.Value()
	  // ...
	}
*/
type Iterator interface {
	// Valid returns whether the current position is valid.
	// Once invalid, an Iterator is forever invalid.
	Valid() bool

	// Next moves the iterator to the next key. Panics if not valid.
	Next()

	// Key returns the key of the cursor. Panics if not valid.
	Key() []byte

	// Value returns the value of the cursor. Panics if not valid.
	Value() []byte

	// Close releases the Iterator.
	Close()
}

// CacheableKVStore is a KVStore that supports cache wrapping, which works
// like SAVEPOINT / ROLLBACK TO SAVEPOINT in SQL.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap keeps a scratch-pad of uncommitted data that is visible to
// all reads done through it.
//
// At the end, call Write to flush the cached data to the parent store, or
// Discard to drop it.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this Cache recursively
	CacheableKVStore

	// Write syncs with the underlying store.
	Write()

	// Discard invalidates this CacheWrap and releases all data
	Discard()
}

// CommitKVStore is a store that persists state to disk, loads on start up and
// maintains some history.
type CommitKVStore interface {
	// Get returns the value at last committed state
	Get(key []byte) []byte

	// CacheWrap returns a scratch-pad to perform actions. Nothing is
	// persisted until the cache is written and the store committed.
	CacheWrap() KVCacheWrap

	// Commit saves the next version to disk, and returns info
	Commit() (CommitID, error)

	// LoadLatestVersion loads the latest persisted version.
	LoadLatestVersion() error

	// LatestVersion returns info on the latest version saved to disk
	LatestVersion() CommitID
}

// CommitID contains the tree version number and its merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
