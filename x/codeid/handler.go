package codeid

import (
	"strconv"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/x"
)

// RegisterRoutes registers the code upload handler.
func RegisterRoutes(r xswap.Registry, auth x.Authenticator) {
	r.Handle(StoreCodeMsg{}.Path(), NewStoreCodeHandler(auth))
}

// RegisterQuery exposes stored codes as "/codes".
func RegisterQuery(qr xswap.QueryRouter) {
	NewBucket().Register("codes", qr)
}

type StoreCodeHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ xswap.Handler = StoreCodeHandler{}

func NewStoreCodeHandler(auth x.Authenticator) StoreCodeHandler {
	return StoreCodeHandler{
		auth:   auth,
		bucket: NewBucket(),
	}
}

func (h StoreCodeHandler) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &xswap.CheckResult{GasAllocated: storeCodeCost}, nil
}

// Deliver stores the code and returns its id in the result data as
// a decimal string.
func (h StoreCodeHandler) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	code := &Code{
		Checksum: Checksum(msg.Code),
		Code:     msg.Code,
		Creator:  msg.Creator,
	}
	id, err := h.bucket.Create(db, code)
	if err != nil {
		return nil, errors.Wrap(err, "store code")
	}
	res := &xswap.DeliverResult{Data: []byte(strconv.FormatUint(id, 10))}
	res.Tag("code_id", strconv.FormatUint(id, 10))
	return res, nil
}

func (h StoreCodeHandler) validate(ctx xswap.Context, tx xswap.Tx) (*StoreCodeMsg, error) {
	var msg StoreCodeMsg
	if err := xswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Creator) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "creator signature missing")
	}
	return &msg, nil
}
