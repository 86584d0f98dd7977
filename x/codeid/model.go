package codeid

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/orm"
)

// ChecksumLength is the size of a code identity.
const ChecksumLength = sha256.Size

// Code is a registered escrow template.
type Code struct {
	// Checksum is the sha256 of Code, or the declared identity when the
	// code bytes are not stored.
	Checksum []byte        `json:"checksum"`
	Code     []byte        `json:"code,omitempty"`
	Creator  xswap.Address `json:"creator,omitempty"`
}

var _ orm.Model = (*Code)(nil)

// Checksum returns the code identity of given bytes.
func Checksum(code []byte) []byte {
	sum := sha256.Sum256(code)
	return sum[:]
}

func (c *Code) Validate() error {
	var err error
	if len(c.Checksum) != ChecksumLength {
		err = errors.AppendField(err, "Checksum", errors.Wrapf(errors.ErrInput, "must be %d bytes", ChecksumLength))
	} else if len(c.Code) > 0 && !bytes.Equal(Checksum(c.Code), c.Checksum) {
		err = errors.AppendField(err, "Checksum", errors.Wrap(errors.ErrState, "does not match code"))
	}
	if len(c.Creator) > 0 {
		err = errors.AppendField(err, "Creator", c.Creator.Validate())
	}
	return err
}

func (c *Code) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(c)
}

func (c *Code) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, c)
}

// CodeKey returns the primary key of the code with given id.
func CodeKey(id uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, id)
	return k
}

// Bucket stores registered codes under their sequential id.
type Bucket struct {
	orm.Bucket
	ids orm.Sequence
}

// NewBucket returns a bucket for codes with a checksum index.
func NewBucket() Bucket {
	b := orm.NewBucket("codes", orm.NewSimpleObj(nil, &Code{})).
		WithIndex("checksum", checksumIndex, false)
	return Bucket{
		Bucket: b,
		ids:    b.Sequence(orm.SeqID),
	}
}

func checksumIndex(obj orm.Object) ([]byte, error) {
	c, ok := obj.Value().(*Code)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return c.Checksum, nil
}

// Create stores the code under the next free id and returns that id.
func (b Bucket) Create(db xswap.KVStore, c *Code) (uint64, error) {
	key := b.ids.NextVal(db)
	if err := b.Save(db, orm.NewSimpleObj(key, c)); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(key), nil
}

// GetCode returns the code stored under the id.
func (b Bucket) GetCode(db xswap.ReadOnlyKVStore, id uint64) (*Code, error) {
	obj, err := b.Get(db, CodeKey(id))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "code %d", id)
	}
	c, ok := obj.Value().(*Code)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return c, nil
}
