package htlc

import (
	"bytes"
	"encoding/binary"
)

// canonicalWriter produces the fixed layout the commitment is computed
// over: little endian integers of their natural width, strings and byte
// slices prefixed with a little endian uint64 length.
type canonicalWriter struct {
	buf bytes.Buffer
}

func (w *canonicalWriter) uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *canonicalWriter) uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *canonicalWriter) bytes(b []byte) {
	w.uint64(uint64(len(b)))
	w.buf.Write(b)
}

func (w *canonicalWriter) string(s string) {
	w.bytes([]byte(s))
}

func (w *canonicalWriter) Bytes() []byte {
	return w.buf.Bytes()
}
