package ledgertest

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer is a secp256k1 identity producing the 65 byte r||s||v
// signatures the gate verifies. The recovery id uses the 27/28
// convention of the production authorizer.
type Signer struct {
	Key *ecdsa.PrivateKey
}

// NewSigner returns a signer with a fresh random key.
func NewSigner() *Signer {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return &Signer{Key: key}
}

// Address returns the signer identity.
func (s *Signer) Address() common.Address {
	return crypto.PubkeyToAddress(s.Key.PublicKey)
}

// Sign signs a 32 byte digest.
func (s *Signer) Sign(digest []byte) []byte {
	sig, err := crypto.Sign(digest, s.Key)
	if err != nil {
		panic(err)
	}
	sig[64] += 27
	return sig
}

// RandomAddress returns a fresh address without keeping the key.
func RandomAddress() common.Address {
	return NewSigner().Address()
}
