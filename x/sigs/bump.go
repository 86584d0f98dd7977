package sigs

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/x"
)

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"
	maxBump             = 1000
	bumpGas             = 100
)

// BumpSequenceMsg advances the sequence of the main signer by Increment,
// voiding transactions signed in advance with the skipped nonces.
type BumpSequenceMsg struct {
	Increment uint32 `json:"increment"`
}

var _ xswap.Msg = (*BumpSequenceMsg)(nil)

func (BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}

func (m *BumpSequenceMsg) Validate() error {
	if m.Increment == 0 || m.Increment > maxBump {
		return errors.Wrapf(errors.ErrMsg, "increment must be within 1 and %d", maxBump)
	}
	return nil
}

func (m *BumpSequenceMsg) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(m)
}

func (m *BumpSequenceMsg) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, m)
}

// RegisterRoutes registers the sequence bump handler.
func RegisterRoutes(r xswap.Registry, auth x.Authenticator) {
	r.Handle(pathBumpSequenceMsg, bumpHandler{auth: auth, bucket: NewBucket()})
}

type bumpHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

func (h bumpHandler) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.CheckResult, error) {
	if _, _, err := h.prepare(ctx, db, tx); err != nil {
		return nil, err
	}
	return &xswap.CheckResult{GasAllocated: bumpGas}, nil
}

func (h bumpHandler) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.DeliverResult, error) {
	user, msg, err := h.prepare(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	// The signature check already advanced the sequence by one.
	if rest := int64(msg.Increment) - 1; rest > 0 {
		if err := user.Advance(user.Sequence, rest); err != nil {
			return nil, err
		}
		if err := h.bucket.Store(db, user); err != nil {
			return nil, errors.Wrap(err, "save user")
		}
	}
	return &xswap.DeliverResult{}, nil
}

func (h bumpHandler) prepare(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*UserData, *BumpSequenceMsg, error) {
	var msg BumpSequenceMsg
	if err := xswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSignerAddress(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	user, err := h.bucket.Load(db, signer)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load user")
	}
	if user == nil {
		return nil, nil, errors.Wrap(errors.ErrNotFound, "no sequence")
	}
	if int64(msg.Increment) > maxSequence-user.Sequence {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "user sequence")
	}
	return user, &msg, nil
}
