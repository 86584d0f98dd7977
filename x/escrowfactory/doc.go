/*
Package escrowfactory deploys destination escrows at deterministic
addresses.

The factory stamps the deployment time into the swap terms, checks that
the destination cancellation happens no later than the source one and
that the deposited funds cover the swap, then instantiates an escrow at
the address derived from the escrow template checksum, the factory
address and the commitment of the stamped terms. The same address can be
computed beforehand with the "/escrowfactory/address" query.

The factory configuration is stored with gconf under the "escrowfactory"
key and is set once, from genesis.
*/
package escrowfactory
