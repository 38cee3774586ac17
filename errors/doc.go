/*
Package errors implements the coded errors used across the ledger.

Every error returned by a ledger operation wraps one of the root errors
declared here or registered by an extension package. Root errors carry a
unique numeric code so that a rejected call maps to a short, machine
checkable reason. Use Wrap or Wrapf to add context while preserving the
root cause, and the root error's Is method to test for it.
*/
package errors
