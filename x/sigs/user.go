package sigs

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/crypto"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/orm"
)

// BucketName is where signing state is kept.
const BucketName = "sigs"

// maxSequence is the greatest nonce a JavaScript client can represent
// exactly, 2^53 - 1.
const maxSequence = (1 << 53) - 1

// UserData is the signing state of a public key.
type UserData struct {
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var err error
	switch {
	case u.Sequence < 0:
		err = errors.AppendField(err, "Sequence", ErrInvalidSequence)
	case u.Sequence > maxSequence:
		err = errors.AppendField(err, "Sequence", errors.ErrOverflow)
	case u.Sequence > 0 && u.Pubkey == nil:
		err = errors.Append(err, errors.Field("Sequence", ErrInvalidSequence, "needs Pubkey"))
	}
	if u.Pubkey != nil {
		err = errors.AppendField(err, "Pubkey", u.Pubkey.Validate())
	}
	return err
}

func (u *UserData) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, u)
}

// Advance moves the sequence forward by n after checking that expected is
// the current value.
func (u *UserData) Advance(expected int64, n int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", u.Sequence, expected)
	}
	if n <= 0 || n > maxSequence-u.Sequence {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence += n
	return nil
}

// Bucket stores UserData under the address of its public key.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &UserData{}))}
}

// RegisterQuery exposes the bucket under "/auth".
func RegisterQuery(qr xswap.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Load returns the state of addr, or nil if the key never signed.
func (b Bucket) Load(db xswap.ReadOnlyKVStore, addr xswap.Address) (*UserData, error) {
	obj, err := b.Get(db, addr)
	if err != nil || obj == nil || obj.Value() == nil {
		return nil, err
	}
	u, ok := obj.Value().(*UserData)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return u, nil
}

// LoadOrNew returns the state of pubkey, starting at sequence zero for a
// key seen for the first time.
func (b Bucket) LoadOrNew(db xswap.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	u, err := b.Load(db, pubkey.Address())
	if err != nil || u != nil {
		return u, err
	}
	return &UserData{Pubkey: pubkey}, nil
}

// Store saves u under its public key address.
func (b Bucket) Store(db xswap.KVStore, u *UserData) error {
	return b.Save(db, orm.NewSimpleObj(u.Pubkey.Address(), u))
}

// NextNonce returns the sequence the next signature of signer must carry.
func NextNonce(db xswap.ReadOnlyKVStore, signer xswap.Address) (int64, error) {
	u, err := NewBucket().Load(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "load user")
	}
	if u == nil {
		return 0, nil
	}
	return u.Sequence, nil
}
