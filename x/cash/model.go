package cash

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/orm"
)

// BucketName is where balances are kept.
const BucketName = "cash"

// Set is the balance of one address.
type Set struct {
	Coins coin.Coins `json:"coins"`
}

var _ orm.Model = (*Set)(nil)

func (s *Set) Validate() error {
	return s.Coins.Validate()
}

func (s *Set) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(s)
}

func (s *Set) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, s)
}

// Bucket stores a Set per address. An address without coins has no
// entry.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Set{}))}
}

// Coins returns the balance of addr. The second value is false when
// nothing is stored.
func (b Bucket) Coins(db xswap.ReadOnlyKVStore, addr xswap.Address) (coin.Coins, bool, error) {
	obj, err := b.Get(db, addr)
	if err != nil || obj == nil {
		return nil, false, err
	}
	set, ok := obj.Value().(*Set)
	if !ok {
		return nil, false, errors.WithType(errors.ErrModel, obj.Value())
	}
	return set.Coins, true, nil
}

// SetCoins replaces the balance of addr, deleting the entry when empty.
func (b Bucket) SetCoins(db xswap.KVStore, addr xswap.Address, coins coin.Coins) error {
	if coins.IsEmpty() {
		return b.Delete(db, addr)
	}
	return b.Save(db, orm.NewSimpleObj(addr, &Set{Coins: coins}))
}

// update applies fn to the balance of addr and stores the result.
func (b Bucket) update(db xswap.KVStore, addr xswap.Address, fn func(coin.Coins) (coin.Coins, error)) error {
	coins, _, err := b.Coins(db, addr)
	if err != nil {
		return err
	}
	if coins, err = fn(coins); err != nil {
		return err
	}
	return b.SetCoins(db, addr, coins)
}
