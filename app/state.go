package app

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

// state keeps the committed store together with the two scratch layers
// written during a block: deliver collects the block's changes, check
// validates incoming transactions for the mempool.
type state struct {
	committed xswap.CommitKVStore
	deliver   xswap.KVCacheWrap
	check     xswap.KVCacheWrap
}

func newState(db xswap.CommitKVStore) *state {
	if err := db.LoadLatestVersion(); err != nil {
		panic(err)
	}
	return &state{
		committed: db,
		deliver:   db.CacheWrap(),
		check:     db.CacheWrap(),
	}
}

func (s *state) info() xswap.CommitID {
	return s.committed.LatestVersion()
}

// commit flushes the delivered changes, saves a new version and starts
// fresh layers on top of it.
func (s *state) commit() (xswap.CommitID, error) {
	s.deliver.Write()
	s.check.Discard()
	id, err := s.committed.Commit()
	if err != nil {
		return id, err
	}
	s.deliver = s.committed.CacheWrap()
	s.check = s.committed.CacheWrap()
	return id, nil
}

const chainIDKey = "_xs:chainID"

func loadChainID(db xswap.ReadOnlyKVStore) string {
	return string(db.Get([]byte(chainIDKey)))
}

// saveChainID sets the chain id once. It cannot be changed afterwards.
func saveChainID(db xswap.KVStore, chainID string) error {
	if !xswap.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	key := []byte(chainIDKey)
	if db.Has(key) {
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis only")
	}
	db.Set(key, []byte(chainID))
	return nil
}
