/*
Package ledgertest provides test doubles for exercising the ledger:
secp256k1 identities, an authorizer that signs digests the way the
production signing service does, and an in-store token with failure
injection.
*/
package ledgertest
