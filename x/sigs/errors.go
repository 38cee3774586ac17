package sigs

import "github.com/dp-one/dpledger/errors"

// Error codes 20 ~ 29 are reserved for the sigs package.
var (
	// ErrMalformedSignature is returned when a signature has the wrong
	// shape and no signer can be recovered from it.
	ErrMalformedSignature = errors.Register(20, "malformed signature")

	// ErrReusedDigest is returned when a digest is marked as used for
	// the second time.
	ErrReusedDigest = errors.Register(21, "digest already used")
)
