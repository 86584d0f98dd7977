/*
Package xswap defines the interfaces shared by the escrow extensions, such
as storage, transactions, handlers and queries. It also contains helpers to
work with addresses, context and abci results.

We pass context through context.Context between app, middleware and
handlers. There exist two functions for every value of type T that we want
to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package xswap
