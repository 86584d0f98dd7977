package store

import (
	"bytes"

	"github.com/google/btree"
)

const btreeDegree = 2

// BTreeCacheWrap buffers writes to a KVStore in a btree. Reads see the
// buffered writes first. Write applies them to the backing store in key
// order, Discard drops them.
type BTreeCacheWrap struct {
	tree *btree.BTree
	free *btree.FreeList
	back KVStore
}

var _ KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap wraps back. Nested wraps share free so that released
// nodes are reused; pass nil to allocate a new list.
func NewBTreeCacheWrap(back KVStore, free *btree.FreeList) *BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return &BTreeCacheWrap{
		tree: btree.NewWithFreeList(btreeDegree, free),
		free: free,
		back: back,
	}
}

// CacheWrap layers another cache over this one.
func (c *BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(c, c.free)
}

// Write flushes all buffered changes to the backing store and empties the
// cache.
func (c *BTreeCacheWrap) Write() {
	c.tree.Ascend(func(i btree.Item) bool {
		e := i.(*entry)
		if e.deleted {
			c.back.Delete(e.key)
		} else {
			c.back.Set(e.key, e.value)
		}
		return true
	})
	c.Discard()
}

// Discard drops all buffered changes.
func (c *BTreeCacheWrap) Discard() {
	for c.tree.DeleteMin() != nil {
	}
}

func (c *BTreeCacheWrap) Set(key, value []byte) {
	if key == nil {
		panic("nil key")
	}
	c.tree.ReplaceOrInsert(&entry{key: key, value: value})
}

func (c *BTreeCacheWrap) Delete(key []byte) {
	if key == nil {
		panic("nil key")
	}
	c.tree.ReplaceOrInsert(&entry{key: key, deleted: true})
}

func (c *BTreeCacheWrap) Get(key []byte) []byte {
	if e := c.lookup(key); e != nil {
		if e.deleted {
			return nil
		}
		return e.value
	}
	return c.back.Get(key)
}

func (c *BTreeCacheWrap) Has(key []byte) bool {
	if e := c.lookup(key); e != nil {
		return !e.deleted
	}
	return c.back.Has(key)
}

func (c *BTreeCacheWrap) lookup(key []byte) *entry {
	if i := c.tree.Get(&entry{key: key}); i != nil {
		return i.(*entry)
	}
	return nil
}

// Iterator walks [start, end) in ascending key order. A nil bound is open.
func (c *BTreeCacheWrap) Iterator(start, end []byte) Iterator {
	return newMergeIterator(c.entries(start, end), c.back.Iterator(start, end), false)
}

// ReverseIterator walks [start, end) in descending key order.
func (c *BTreeCacheWrap) ReverseIterator(start, end []byte) Iterator {
	cached := c.entries(start, end)
	for i, j := 0, len(cached)-1; i < j; i, j = i+1, j-1 {
		cached[i], cached[j] = cached[j], cached[i]
	}
	return newMergeIterator(cached, c.back.ReverseIterator(start, end), true)
}

// entries returns the buffered changes within [start, end) in ascending
// order.
func (c *BTreeCacheWrap) entries(start, end []byte) []*entry {
	var res []*entry
	collect := func(i btree.Item) bool {
		res = append(res, i.(*entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.tree.Ascend(collect)
	case start == nil:
		c.tree.AscendLessThan(&entry{key: end}, collect)
	case end == nil:
		c.tree.AscendGreaterOrEqual(&entry{key: start}, collect)
	default:
		c.tree.AscendRange(&entry{key: start}, &entry{key: end}, collect)
	}
	return res
}

// entry is a buffered set, or a delete when deleted is true.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e *entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(*entry).key) < 0
}
