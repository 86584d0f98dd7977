package weavetest

import "github.com/iov-one/xswap"

// Handler is a counting xswap.Handler mock. A non nil CheckErr or DeliverErr
// fails the corresponding call, otherwise a copy of the configured result is
// returned.
type Handler struct {
	calls

	CheckResult   xswap.CheckResult
	CheckErr      error
	DeliverResult xswap.DeliverResult
	DeliverErr    error
}

var _ xswap.Handler = (*Handler)(nil)

func (h *Handler) Check(xswap.Context, xswap.KVStore, xswap.Tx) (*xswap.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(xswap.Context, xswap.KVStore, xswap.Tx) (*xswap.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler stores Key and Value before returning Err, so that tests can
// tell whether a failed call left its writes behind.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ xswap.Handler = WriteHandler{}

func (h WriteHandler) Check(_ xswap.Context, db xswap.KVStore, _ xswap.Tx) (*xswap.CheckResult, error) {
	db.Set(h.Key, h.Value)
	if h.Err != nil {
		return nil, h.Err
	}
	return &xswap.CheckResult{}, nil
}

func (h WriteHandler) Deliver(_ xswap.Context, db xswap.KVStore, _ xswap.Tx) (*xswap.DeliverResult, error) {
	db.Set(h.Key, h.Value)
	if h.Err != nil {
		return nil, h.Err
	}
	return &xswap.DeliverResult{}, nil
}

// PanicHandler panics with Value on every call.
type PanicHandler struct {
	Value interface{}
}

var _ xswap.Handler = PanicHandler{}

func (h PanicHandler) Check(xswap.Context, xswap.KVStore, xswap.Tx) (*xswap.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(xswap.Context, xswap.KVStore, xswap.Tx) (*xswap.DeliverResult, error) {
	panic(h.Value)
}
