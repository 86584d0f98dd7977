/*
Package escrowdst implements the destination side escrow of a cross chain
swap.

An escrow is instantiated by the escrow factory at a deterministic address
and holds the swap amount and the safety deposit. Every call supplies the
swap terms again; they are checked against what the escrow was created
with before the live timelock window is checked. The escrow ends in exactly
one of the Withdrawn or Cancelled states, or it is Rescued by the taker
after the rescue delay.

State changes are computed by Transition, a pure function of the escrow,
the call and the current time. Handlers apply the resulting transfers and
the new state in a single atomic step.
*/
package escrowdst
