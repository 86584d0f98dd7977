package xswap

import (
	"github.com/iov-one/xswap/errors"
	amino "github.com/tendermint/go-amino"
)

// codec serializes all models and messages that do not contain interface
// fields. Such types do not require any registration.
var codec = amino.NewCodec()

// MarshalBinary serializes given structure using the amino binary format.
func MarshalBinary(o interface{}) ([]byte, error) {
	raw, err := codec.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return raw, nil
}

// UnmarshalBinary deserializes data produced by MarshalBinary into given
// pointer.
func UnmarshalBinary(raw []byte, ptr interface{}) error {
	if err := codec.UnmarshalBinaryBare(raw, ptr); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}
