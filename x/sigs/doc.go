/*
Package sigs authenticates transactions by their ed25519 signatures.

Every signature commits to the chain id and to the signer's sequence, a
per key nonce kept in the "sigs" bucket. The Decorator verifies all
signatures, bumps the sequences and exposes the signers to the rest of the
stack through Authenticate. A relayer that pre-signed transactions can void
them with BumpSequenceMsg.
*/
package sigs
