package orm

import (
	"reflect"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

// Model is a record that can be stored in a bucket.
type Model interface {
	xswap.Persistent
	Validate() error
}

// Object binds a Model to its primary key.
type Object interface {
	Keyed
	Cloneable
	Validate() error
	Value() Model
}

// Keyed has a primary key.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable produces an empty Object of its own kind, ready to be loaded
// into.
type Cloneable interface {
	Clone() Object
}

// Reader loads objects by primary key.
type Reader interface {
	Get(db xswap.ReadOnlyKVStore, key []byte) (Object, error)
}

// SimpleObj is the default Object: a key and a pointer Model.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Value() Model { return o.value }

func (o SimpleObj) Key() []byte { return o.key }

func (o *SimpleObj) SetKey(key []byte) { o.key = key }

func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "missing value")
	}
	return errors.Field("Value", o.value.Validate(), "invalid value")
}

// Clone keeps a copy of the key and a zero value of the same Model type.
func (o *SimpleObj) Clone() Object {
	zero := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	var key []byte
	if len(o.key) > 0 {
		key = append(key, o.key...)
	}
	return &SimpleObj{key: key, value: zero}
}
