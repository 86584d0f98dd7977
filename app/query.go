package app

import (
	"bytes"
	"strings"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Query serves data from the last committed state. The path selects a
// registered handler, for example "/escrows" or "/escrows/hashlock", and an
// optional "?prefix" suffix turns it into a prefix query. Key and Value of
// the response are ResultSets of equal length.
func (a *App) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(req.Path)
	h := a.queries.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", req.Path))
	}

	// TODO: serve req.Height once the iavl adapter exposes versioned reads.
	height := a.state.info().Version
	db := a.state.committed.CacheWrap()
	defer db.Discard()

	models, err := h.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}
	res := abci.ResponseQuery{Height: height}
	if res.Key, err = resultKeys(models).Marshal(); err != nil {
		return queryError(err)
	}
	if res.Value, err = resultValues(models).Marshal(); err != nil {
		return queryError(err)
	}
	return res
}

func splitPath(path string) (string, string) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}

// RegisterStoreQuery exposes raw store access under "/".
func RegisterStoreQuery(qr xswap.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db xswap.ReadOnlyKVStore, mod string, data []byte) ([]xswap.Model, error) {
	switch mod {
	case xswap.KeyQueryMod:
		v := db.Get(data)
		if v == nil {
			return nil, nil
		}
		return []xswap.Model{xswap.Pair(data, v)}, nil
	case xswap.PrefixQueryMod:
		var res []xswap.Model
		it := db.Iterator(data, nil)
		defer it.Close()
		for ; it.Valid() && bytes.HasPrefix(it.Key(), data); it.Next() {
			res = append(res, xswap.Pair(it.Key(), it.Value()))
		}
		return res, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// ResultSet is the wire form of either the keys or the values returned by
// a query.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

func (r *ResultSet) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(r)
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, r)
}

func resultKeys(models []xswap.Model) *ResultSet {
	res := &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		res.Results[i] = m.Key
	}
	return res
}

func resultValues(models []xswap.Model) *ResultSet {
	res := &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		res.Results[i] = m.Value
	}
	return res
}

// JoinResults pairs the key and value sets of a query response.
func JoinResults(keys, values *ResultSet) ([]xswap.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrap(errors.ErrState, "mismatched result set size")
	}
	models := make([]xswap.Model, len(keys.Results))
	for i := range models {
		models[i] = xswap.Pair(keys.Results[i], values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult decodes the first value of a serialized ResultSet
// into o. An empty set leaves o untouched.
func UnmarshalOneResult(raw []byte, o xswap.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(raw); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
