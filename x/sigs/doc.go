/*
Package sigs provides the admission-control primitives for signed
authorizations: a verifier that recovers the signer of a detached
signature over a message digest, and a replay guard that remembers every
digest that was ever consumed.

The verifier is expressed as an interface so that the signature scheme
can be swapped without touching any caller. The bundled implementation
recovers secp256k1 signatures in the 65 byte r||s||v format produced by
EVM tooling.
*/
package sigs
