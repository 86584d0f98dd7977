/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration singleton per extension.

A configuration is loaded once from the genesis file (`conf.<pkg>` section),
validated and stored under the `_c:<pkg>` key. Extensions read it back with
Load on every call that needs it.
*/
package gconf
