/*
Package errors implements custom error interfaces for xswap.

Reuse as many errors from this package as possible and define custom package
errors only when absolutely necessary. Extensions register their own root
errors with Register(code, description), for example the escrow errors in
x/htlc.

Code stands for the ABCI error code, which allows a client to distinguish
types of errors and act accordingly, for example a relayer waiting for a
timelock window before retrying.

There is also support for stacktraces. Create errors using ErrXyz.New("...")
or errors.Wrap(err, "...") at the point of creation to ensure a stacktrace is
attached. If you wrap multiple times, only the first wrap records the
stacktrace.
*/
package errors
