package weavetest

import (
	"context"

	"github.com/iov-one/xswap"
)

// Auth authenticates a fixed set of conditions: Signer (if set) followed by
// Signers. Use it in place of signature verification in handler tests.
type Auth struct {
	Signer  xswap.Condition
	Signers []xswap.Condition
}

func (a *Auth) GetConditions(xswap.Context) []xswap.Condition {
	conds := append([]xswap.Condition(nil), a.Signers...)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) HasAddress(ctx xswap.Context, addr xswap.Address) bool {
	return anyAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates whatever conditions were attached to the context
// under Key with SetConditions.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx xswap.Context, conds ...xswap.Condition) xswap.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx xswap.Context) []xswap.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]xswap.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx xswap.Context, addr xswap.Address) bool {
	return anyAddress(a.GetConditions(ctx), addr)
}

func anyAddress(conds []xswap.Condition, addr xswap.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
