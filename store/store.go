/*
Package store provides the in-memory layers placed over a committed
KVStore: a btree backed cache wrap that collects the writes of a
transaction, and the iterators that merge it with the state below.
*/
package store

import "github.com/iov-one/xswap"

type KVStore = xswap.KVStore
type ReadOnlyKVStore = xswap.ReadOnlyKVStore
type Iterator = xswap.Iterator
type CacheableKVStore = xswap.CacheableKVStore
type KVCacheWrap = xswap.KVCacheWrap
type CommitKVStore = xswap.CommitKVStore
type CommitID = xswap.CommitID
type Model = xswap.Model

// MemStore returns a store without persistence. Write on it discards all
// data, so use it only in tests and for scratch state.
func MemStore() KVCacheWrap {
	return NewBTreeCacheWrap(nothing{}, nil)
}

// nothing is a KVStore that holds no data and drops all writes.
type nothing struct{}

func (nothing) Get([]byte) []byte                       { return nil }
func (nothing) Has([]byte) bool                         { return false }
func (nothing) Set([]byte, []byte)                      {}
func (nothing) Delete([]byte)                           {}
func (nothing) Iterator([]byte, []byte) Iterator        { return NewSliceIterator(nil) }
func (nothing) ReverseIterator([]byte, []byte) Iterator { return NewSliceIterator(nil) }
