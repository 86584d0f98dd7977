package weavetest

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/store/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// CommitKVStore returns an in-memory commit store backed by an iavl tree.
func CommitKVStore() xswap.CommitKVStore {
	return iavl.NewCommitStoreFromDB(dbm.NewMemDB())
}
