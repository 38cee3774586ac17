/*
Package dpledger defines the interfaces shared by all packages of the
dpledger staking ledger.

The root package intentionally carries no business logic. It declares the
key-value storage contracts that the orm and store packages build on, and
the primitive types (UnixTime) that models and messages embed. Extensions
live under x/ and follow the model/msg/controller/handler layout.
*/
package dpledger
