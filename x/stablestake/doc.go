/*
Package stablestake implements a value-custody staking ledger with
signature-gated admission.

Principal is pulled from the caller into an external custodian and
recorded as a position. Every mutating entry point (stake, the two-phase
principal withdrawal, interest claims) must carry a single-use, expiring
authorization produced off-ledger by a designated signer. Positions earn
a fixed monthly interest derived from the period's base rate plus a tier
bonus; the tier is derived from the caller's balance of a companion
locking token at admission time and frozen on the position.

The package follows the extension layout of model, msg, controller and
gate: the gate is the only entry point for callers, the controller owns
all bucket mutation, and every call runs inside a store cache wrap so a
failure leaves no trace.
*/
package stablestake
