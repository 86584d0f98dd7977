package store

import (
	"bytes"
)

// SliceIterator iterates over a prepared list of models.
type SliceIterator struct {
	data []Model
	pos  int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool {
	return s.pos < len(s.data)
}

func (s *SliceIterator) Next() {
	s.mustBeValid()
	s.pos++
}

func (s *SliceIterator) Key() []byte {
	s.mustBeValid()
	return s.data[s.pos].Key
}

func (s *SliceIterator) Value() []byte {
	s.mustBeValid()
	return s.data[s.pos].Value
}

// Close releases the data. The iterator is invalid afterwards.
func (s *SliceIterator) Close() {
	s.data = nil
	s.pos = 0
}

func (s *SliceIterator) mustBeValid() {
	if !s.Valid() {
		panic("iterator past the end")
	}
}

// mergeIterator walks cached changes and the parent store side by side.
// A cached entry shadows a parent entry with the same key and a cached
// delete hides it.
type mergeIterator struct {
	cached  []*entry
	parent  Iterator
	reverse bool

	// key and value of the current position, key is nil when exhausted.
	key   []byte
	value []byte
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []*entry, parent Iterator, reverse bool) *mergeIterator {
	it := &mergeIterator{cached: cached, parent: parent, reverse: reverse}
	it.advance()
	return it
}

func (it *mergeIterator) Valid() bool {
	return it.key != nil
}

func (it *mergeIterator) Next() {
	if !it.Valid() {
		panic("iterator past the end")
	}
	it.advance()
}

func (it *mergeIterator) Key() []byte {
	if !it.Valid() {
		panic("iterator past the end")
	}
	return it.key
}

func (it *mergeIterator) Value() []byte {
	if !it.Valid() {
		panic("iterator past the end")
	}
	return it.value
}

func (it *mergeIterator) Close() {
	it.parent.Close()
	it.cached = nil
	it.key, it.value = nil, nil
}

// advance moves to the next visible key, consuming the head of the parent,
// the cache or both.
func (it *mergeIterator) advance() {
	for {
		hasParent := it.parent.Valid()
		if len(it.cached) == 0 && !hasParent {
			it.key, it.value = nil, nil
			return
		}

		if len(it.cached) == 0 || (hasParent && it.parentFirst()) {
			it.key, it.value = it.parent.Key(), it.parent.Value()
			it.parent.Next()
			return
		}

		head := it.cached[0]
		it.cached = it.cached[1:]
		if hasParent && bytes.Equal(head.key, it.parent.Key()) {
			it.parent.Next()
		}
		if head.deleted {
			continue
		}
		it.key, it.value = head.key, head.value
		return
	}
}

// parentFirst reports whether the parent key comes strictly before the
// next cached key in iteration order.
func (it *mergeIterator) parentFirst() bool {
	cmp := bytes.Compare(it.parent.Key(), it.cached[0].key)
	if it.reverse {
		return cmp > 0
	}
	return cmp < 0
}
