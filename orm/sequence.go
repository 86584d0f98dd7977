package orm

import (
	"encoding/binary"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

// Sequence is a persistent counter. Its big endian values sort in the
// order they were issued, which makes them good primary keys.
type Sequence struct {
	id []byte
}

// NewSequence stores the counter under "_s.<bucket>:<name>".
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal advances the counter and returns the new value as 8 bytes.
func (s *Sequence) NextVal(db xswap.KVStore) []byte {
	return EncodeSequence(s.NextInt(db))
}

// NextInt advances the counter and returns the new value.
func (s *Sequence) NextInt(db xswap.KVStore) int64 {
	n := s.Latest(db) + 1
	db.Set(s.id, EncodeSequence(n))
	return n
}

// Latest returns the last issued value, zero if none.
func (s *Sequence) Latest(db xswap.ReadOnlyKVStore) int64 {
	return DecodeSequence(db.Get(s.id))
}

func EncodeSequence(n int64) []byte {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(n))
	return raw[:]
}

// DecodeSequence reads a value written by EncodeSequence. Nil is zero.
func DecodeSequence(raw []byte) int64 {
	if raw == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

// ValidateSequence checks that id looks like a NextVal result.
func ValidateSequence(id []byte) error {
	switch len(id) {
	case 0:
		return errors.Wrap(errors.ErrEmpty, "sequence")
	case 8:
		return nil
	}
	return errors.Wrapf(errors.ErrInput, "sequence of %d bytes", len(id))
}
