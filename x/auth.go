package x

import (
	"github.com/iov-one/xswap"
)

// Authenticator reports which conditions authorized the current
// transaction. Handlers take one in their constructor instead of reading
// signatures themselves.
type Authenticator interface {
	// GetConditions lists the conditions in signing order.
	GetConditions(xswap.Context) []xswap.Condition
	// HasAddress reports whether any condition controls addr.
	HasAddress(xswap.Context, xswap.Address) bool
}

// ChainAuth joins several authenticators. A condition granted by any of
// them is granted by the result.
func ChainAuth(auths ...Authenticator) Authenticator {
	return multiAuth(auths)
}

type multiAuth []Authenticator

func (m multiAuth) GetConditions(ctx xswap.Context) []xswap.Condition {
	var res []xswap.Condition
	for _, a := range m {
		res = append(res, a.GetConditions(ctx)...)
	}
	return res
}

func (m multiAuth) HasAddress(ctx xswap.Context, addr xswap.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition, or nil for an unsigned
// transaction. The escrow handlers treat it as the caller.
func MainSigner(ctx xswap.Context, auth Authenticator) xswap.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// MainSignerAddress is the address of MainSigner, or nil.
func MainSignerAddress(ctx xswap.Context, auth Authenticator) xswap.Address {
	if c := MainSigner(ctx, auth); c != nil {
		return c.Address()
	}
	return nil
}

// GetAddresses lists the addresses of all authorizing conditions.
func GetAddresses(ctx xswap.Context, auth Authenticator) []xswap.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]xswap.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}
