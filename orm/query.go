package orm

import "github.com/iov-one/xswap"

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr xswap.Iterator) []xswap.Model {
	defer itr.Close()

	res := []xswap.Model{}
	for ; itr.Valid(); itr.Next() {
		mod := xswap.Model{
			Key:   itr.Key(),
			Value: itr.Value(),
		}
		res = append(res, mod)
	}
	return res
}

// queryPrefix returns every pair stored under the given prefix.
func queryPrefix(db xswap.ReadOnlyKVStore, prefix []byte) []xswap.Model {
	return ConsumeIterator(db.Iterator(prefix, prefixRangeEnd(prefix)))
}

// prefixRangeEnd returns the smallest key that is greater than all keys
// starting with prefix, or nil if there is none.
func prefixRangeEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
