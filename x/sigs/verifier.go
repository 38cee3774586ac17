package sigs

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/dp-one/dpledger/errors"
)

// SignatureLength is the expected length of an r||s||v signature.
const SignatureLength = 65

// Verifier recovers the identity that produced a detached signature over
// a message digest.
type Verifier interface {
	RecoverSigner(digest []byte, sig []byte) (common.Address, error)
}

// Secp256k1Verifier recovers secp256k1 signatures over a 32 byte digest.
// It accepts both the EVM convention of a recovery id of 27/28 and the
// raw 0/1 form.
type Secp256k1Verifier struct{}

var _ Verifier = Secp256k1Verifier{}

func (Secp256k1Verifier) RecoverSigner(digest []byte, sig []byte) (common.Address, error) {
	if len(digest) != common.HashLength {
		return common.Address{}, errors.Wrapf(ErrMalformedSignature, "digest must be %d bytes", common.HashLength)
	}
	if len(sig) != SignatureLength {
		return common.Address{}, errors.Wrapf(ErrMalformedSignature, "signature must be %d bytes", SignatureLength)
	}

	normalized := make([]byte, SignatureLength)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	if normalized[64] > 1 {
		return common.Address{}, errors.Wrap(ErrMalformedSignature, "invalid recovery id")
	}

	pub, err := crypto.SigToPub(digest, normalized)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrMalformedSignature, "cannot recover public key")
	}
	return crypto.PubkeyToAddress(*pub), nil
}
