package xswap

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/iov-one/xswap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextValuesAreSetOnce(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	ctx = WithHeight(ctx, 42)
	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), h)
	assert.Panics(t, func() { WithHeight(ctx, 43) })

	_, ok = GetHeader(ctx)
	assert.False(t, ok)
	ctx = WithHeader(ctx, abci.Header{Height: 42})
	assert.Panics(t, func() { WithHeader(ctx, abci.Header{}) })

	assert.Panics(t, func() { GetChainID(ctx) })
	assert.Panics(t, func() { WithChainID(ctx, "bad") })
	ctx = WithChainID(ctx, "xswap-dst-1")
	assert.Equal(t, "xswap-dst-1", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "xswap-dst-2") })
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	logger := log.NewTMLogger(os.Stdout)
	ctx = WithLogger(ctx, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	tagged := WithLogInfo(ctx, "escrow", "abc")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(tagged))
}

func TestBlockTime(t *testing.T) {
	now := time.Unix(1700000000, 0)
	cases := map[string]struct {
		ctx      Context
		want     time.Time
		wantUnix uint64
		wantErr  *errors.Error
	}{
		"explicit": {
			ctx:      WithBlockTime(context.Background(), now),
			want:     now,
			wantUnix: 1700000000,
		},
		"from header": {
			ctx:      WithHeader(context.Background(), abci.Header{Time: now}),
			want:     now,
			wantUnix: 1700000000,
		},
		"missing": {
			ctx:     context.Background(),
			wantErr: errors.ErrHuman,
		},
		"zero": {
			ctx:     WithBlockTime(context.Background(), time.Time{}),
			wantErr: errors.ErrHuman,
		},
		"before epoch": {
			ctx:     WithBlockTime(context.Background(), time.Unix(-5, 0)),
			want:    time.Unix(-5, 0),
			wantErr: errors.ErrState,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			unix, err := BlockUnix(tc.ctx)
			require.True(t, tc.wantErr.Is(err), "%+v", err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.wantUnix, unix)
			got, err := BlockTime(tc.ctx)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got))
		})
	}
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"":                              false,
		"foo":                           false,
		"xswap-1":                       true,
		"dst_chain_42":                  true,
		"semi;colon":                    false,
		"this-chain-id-is-way-too-long": false,
	}
	for chainID, want := range cases {
		assert.Equal(t, want, IsValidChainID(chainID), chainID)
	}
}
