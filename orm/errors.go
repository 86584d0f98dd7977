package orm

import "github.com/iov-one/xswap/errors"

// ErrInvalidIndex is returned when a bucket is asked for an index it does
// not maintain.
var ErrInvalidIndex = errors.Register(100, "invalid index")
