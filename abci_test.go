package xswap_test

import (
	"fmt"
	"testing"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorResponses(t *testing.T) {
	cases := map[string]struct {
		err         error
		wantCode    uint32
		wantDeliver string
		wantCheck   string
	}{
		"unregistered error is redacted": {
			err:         fmt.Errorf("leveldb: corrupted"),
			wantCode:    1,
			wantDeliver: "cannot deliver tx: internal error",
			wantCheck:   "cannot check tx: internal error",
		},
		"registered error": {
			err:         errors.Wrap(errors.ErrUnauthorized, "taker only"),
			wantCode:    errors.ErrUnauthorized.ABCICode(),
			wantDeliver: "cannot deliver tx: taker only: unauthorized",
			wantCheck:   "cannot check tx: taker only: unauthorized",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dres := xswap.DeliverOrError(nil, tc.err, false)
			assert.True(t, dres.IsErr())
			assert.Equal(t, tc.wantCode, dres.Code)
			assert.Equal(t, tc.wantDeliver, dres.Log)

			cres := xswap.CheckOrError(nil, tc.err, false)
			assert.True(t, cres.IsErr())
			assert.Equal(t, tc.wantCode, cres.Code)
			assert.Equal(t, tc.wantCheck, cres.Log)
		})
	}
}

func TestSuccessResponses(t *testing.T) {
	dres := &xswap.DeliverResult{Data: []byte{1, 3, 4}, Log: "created"}
	dres.Tag("hashlock", "abc")
	ad := xswap.DeliverOrError(dres, nil, false)
	assert.False(t, ad.IsErr())
	assert.Equal(t, []byte{1, 3, 4}, ad.Data)
	assert.Equal(t, "created", ad.Log)
	if assert.Len(t, ad.Tags, 1) {
		assert.Equal(t, "hashlock", string(ad.Tags[0].Key))
		assert.Equal(t, "abc", string(ad.Tags[0].Value))
	}

	cres := xswap.NewCheck(12345, "aok")
	ac := xswap.CheckOrError(&cres, nil, false)
	assert.False(t, ac.IsErr())
	assert.Equal(t, "aok", ac.Log)
	assert.Equal(t, int64(12345), ac.GasWanted)
	assert.Empty(t, ac.Data)
}
