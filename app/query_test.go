package app

import (
	"testing"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/store"
	"github.com/iov-one/xswap/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestSplitPath(t *testing.T) {
	cases := map[string][2]string{
		"/escrows":                 {"/escrows", ""},
		"/escrows?prefix":          {"/escrows", "prefix"},
		"/escrows/hashlock?prefix": {"/escrows/hashlock", "prefix"},
		"/?":                       {"/", ""},
	}
	for in, want := range cases {
		path, mod := splitPath(in)
		assert.Equal(t, want[0], path, in)
		assert.Equal(t, want[1], mod, in)
	}
}

func TestRawQuery(t *testing.T) {
	db := store.MemStore()
	db.Set([]byte("cash:a"), []byte("1"))
	db.Set([]byte("cash:b"), []byte("2"))
	db.Set([]byte("sigs:a"), []byte("3"))

	q := rawQuery{}
	models, err := q.Query(db, xswap.KeyQueryMod, []byte("cash:b"))
	require.NoError(t, err)
	assert.Equal(t, []xswap.Model{xswap.Pair([]byte("cash:b"), []byte("2"))}, models)

	models, err = q.Query(db, xswap.KeyQueryMod, []byte("cash:c"))
	require.NoError(t, err)
	assert.Empty(t, models)

	models, err = q.Query(db, xswap.PrefixQueryMod, []byte("cash:"))
	require.NoError(t, err)
	assert.Len(t, models, 2)

	_, err = q.Query(db, "range", nil)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestJoinResults(t *testing.T) {
	models := []xswap.Model{
		xswap.Pair([]byte("k1"), []byte("v1")),
		xswap.Pair([]byte("k2"), []byte("v2")),
	}
	joined, err := JoinResults(resultKeys(models), resultValues(models))
	require.NoError(t, err)
	assert.Equal(t, models, joined)

	_, err = JoinResults(resultKeys(models), resultValues(models[:1]))
	assert.True(t, errors.ErrState.Is(err))
}

func TestQueryUnknownPath(t *testing.T) {
	myApp := NewApplication(weavetest.CommitKVStore(), log.NewNopLogger(), false)
	res := myApp.Query(abci.RequestQuery{Path: "/nothing"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)
}

func TestGenesisOnce(t *testing.T) {
	myApp := NewApplication(weavetest.CommitKVStore(), log.NewNopLogger(), false)
	assert.Panics(t, func() {
		myApp.InitChain(abci.RequestInitChain{ChainId: chainID})
	}, "empty app state")

	myApp.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: []byte(`{}`)})
	assert.Equal(t, chainID, myApp.GetChainID())
	assert.Panics(t, func() {
		myApp.InitChain(abci.RequestInitChain{ChainId: "other-chain", AppStateBytes: []byte(`{}`)})
	})
}
