/*
Package codeid implements a registry of escrow template code.

Each stored code receives a sequential identifier and is addressed by the
sha256 checksum of its bytes. The checksum is the code identity used when
deriving deterministic escrow addresses. A code may be registered by checksum
only, when the template lives on another chain and only its identity matters.
*/
package codeid
