package codeid

import (
	"encoding/hex"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

const optKey = "codeid"

// GenesisCode declares a code either by its bytes or by its checksum.
// Codes are assigned ids in declaration order, starting at 1.
type GenesisCode struct {
	Code     []byte `json:"code,omitempty"`
	Checksum string `json:"checksum,omitempty"`
}

type Initializer struct{}

var _ xswap.Initializer = Initializer{}

func (Initializer) FromGenesis(opts xswap.Options, db xswap.KVStore) error {
	var codes []GenesisCode
	if err := opts.ReadOptions(optKey, &codes); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, gc := range codes {
		c, err := gc.model()
		if err != nil {
			return errors.Wrapf(err, "code %d", i)
		}
		if _, err := bucket.Create(db, c); err != nil {
			return errors.Wrapf(err, "code %d", i)
		}
	}
	return nil
}

func (gc GenesisCode) model() (*Code, error) {
	if len(gc.Code) > 0 {
		c := &Code{Checksum: Checksum(gc.Code), Code: gc.Code}
		if gc.Checksum != "" {
			declared, err := hex.DecodeString(gc.Checksum)
			if err != nil {
				return nil, errors.Wrap(errors.ErrInput, "checksum hex")
			}
			c.Checksum = declared
		}
		return c, nil
	}
	if gc.Checksum == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "code or checksum required")
	}
	sum, err := hex.DecodeString(gc.Checksum)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "checksum hex")
	}
	return &Code{Checksum: sum}, nil
}
