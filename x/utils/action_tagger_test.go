package utils

import (
	"context"
	"testing"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/store"
	"github.com/iov-one/xswap/weavetest"
	"github.com/iov-one/xswap/weavetest/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func deliverResult(log string) xswap.DeliverResult {
	return xswap.DeliverResult{Log: log}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		handler xswap.Handler
		tx      xswap.Tx
		err     *errors.Error
		tags    []common.KVPair
	}{
		"simple call": {
			handler: &weavetest.Handler{},
			tx:      &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrowfactory/create"}},
			tags:    []common.KVPair{stringTag(ActionKey, "escrowfactory/create")},
		},
		"passes through error": {
			handler: &weavetest.Handler{DeliverErr: errors.ErrHuman},
			tx:      &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrowfactory/create"}},
			err:     errors.ErrHuman,
		},
		"broken transaction": {
			handler: &weavetest.Handler{},
			tx:      &weavetest.Tx{Err: errors.ErrInput},
			err:     errors.ErrInput,
		},
		"tags are additive": {
			handler: &weavetest.Handler{
				DeliverResult: xswap.DeliverResult{Tags: []common.KVPair{stringTag("escrow_address", "abc")}},
			},
			tx:   &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrowdst/withdraw"}},
			tags: []common.KVPair{stringTag("escrow_address", "abc"), stringTag(ActionKey, "escrowdst/withdraw")},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			stack := weavetest.Decorate(tc.handler, NewActionTagger())
			res, err := stack.Deliver(context.Background(), store.MemStore(), tc.tx)
			if !tc.err.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.err == nil {
				assert.Equal(t, tc.tags, res.Tags)
			}
		})
	}
}
