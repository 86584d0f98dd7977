/*
Package orm stores typed records in prefixed subspaces of a KVStore.

A Bucket holds one kind of Model under "<name>:<key>". Secondary indexes
map a value derived from the record back to its primary key and live under
"_i.<bucket>_<index>:". Counters for sequential keys live under
"_s.<bucket>:<name>".
*/
package orm
