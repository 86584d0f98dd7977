/*
Package x contains helpers shared by the extensions

Extensions implement common functionality (Handler, Decorator,
Initializer) and are combined together by the app package. The
authentication helpers defined here let handlers ask "who signed this
transaction" without depending on a concrete signature scheme.
*/
package x
