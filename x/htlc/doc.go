/*
Package htlc holds the swap terms shared by the escrow factory and the
escrow destination: immutables, timelocks, the commitment hash that binds
them, deterministic address derivation, secret verification, fee parsing and
the funding rule applied when an escrow is created.

Everything in this package is a pure function of its input. State and fund
movement live in the escrowfactory and escrowdst extensions.
*/
package htlc
