package codeid

import (
	"github.com/iov-one/xswap"
)

// Lookup resolves a code id into the checksum of the stored code.
type Lookup interface {
	Checksum(db xswap.ReadOnlyKVStore, codeID uint64) ([]byte, error)
}

// BucketLookup resolves checksums using the code bucket.
type BucketLookup struct {
	bucket Bucket
}

var _ Lookup = BucketLookup{}

func NewLookup() BucketLookup {
	return BucketLookup{bucket: NewBucket()}
}

func (l BucketLookup) Checksum(db xswap.ReadOnlyKVStore, codeID uint64) ([]byte, error) {
	c, err := l.bucket.GetCode(db, codeID)
	if err != nil {
		return nil, err
	}
	return c.Checksum, nil
}
