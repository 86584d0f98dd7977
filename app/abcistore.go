package app

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore is a read only view of an application state through its
// abci Query interface. Wrap it with a bucket to read extension models as
// a client would.
type ABCIStore struct {
	app abci.Application
}

var _ xswap.ReadOnlyKVStore = (*ABCIStore)(nil)

func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get panics if the query fails.
func (a *ABCIStore) Get(key []byte) []byte {
	res := a.query("/", key)
	var values ResultSet
	if err := values.Unmarshal(res.Value); err != nil {
		panic(errors.Wrap(err, "unmarshal result set"))
	}
	if len(values.Results) == 0 {
		return nil
	}
	return values.Results[0]
}

func (a *ABCIStore) Has(key []byte) bool {
	return len(a.Get(key)) > 0
}

// Iterator supports only the full range.
func (a *ABCIStore) Iterator(start, end []byte) xswap.Iterator {
	if start != nil || end != nil {
		panic("iterator only implemented for entire range")
	}
	res := a.query("/?prefix", nil)
	var keys, values ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		panic(errors.Wrap(err, "unmarshal keys"))
	}
	if err := values.Unmarshal(res.Value); err != nil {
		panic(errors.Wrap(err, "unmarshal values"))
	}
	models, err := JoinResults(&keys, &values)
	if err != nil {
		panic(err)
	}
	return store.NewSliceIterator(models)
}

func (a *ABCIStore) ReverseIterator(start, end []byte) xswap.Iterator {
	panic("not implemented")
}

func (a *ABCIStore) query(path string, data []byte) abci.ResponseQuery {
	res := a.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != 0 {
		panic(res.Log)
	}
	return res
}
