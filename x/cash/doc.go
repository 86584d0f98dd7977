/*
Package cash defines a simple ledger of multi-denomination wallets.

There is no logic in the coins (tokens), except that the balance
of any coin may not go below zero. Escrows are wallets like any other,
addressed by their derived contract address.
*/
package cash
