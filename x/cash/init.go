package cash

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
)

// GenesisAccount is one entry of the "cash" genesis list. The address is
// hex encoded.
type GenesisAccount struct {
	Address xswap.Address `json:"address"`
	Set
}

// Initializer loads the genesis balances.
type Initializer struct{}

var _ xswap.Initializer = Initializer{}

func (Initializer) FromGenesis(opts xswap.Options, db xswap.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, a := range accounts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		coins, err := coin.CombineCoins(a.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := bucket.SetCoins(db, a.Address, coins); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
