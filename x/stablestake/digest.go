package stablestake

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/dp-one/dpledger"
	"github.com/dp-one/dpledger/errors"
)

// Authorization digests bind the ledger identity, the caller and every
// operation parameter, so a signature cannot be replayed across ledgers,
// callers or parameter sets. Stake and principal digests hash the
// tightly packed tuple; the interest digest hashes the padded ABI
// encoding because of its dynamic arrays.

// StakeDigest returns the digest the authorizer signs to admit a stake.
func StakeDigest(ledger, caller common.Address, class AdmissionClass, period uint32, amount *big.Int, tokenLocked bool, expiry dpledger.UnixTime) []byte {
	lock := byte(0)
	if tokenLocked {
		lock = 1
	}
	var packed []byte
	packed = append(packed, ledger.Bytes()...)
	packed = append(packed, caller.Bytes()...)
	packed = append(packed, byte(class))
	packed = append(packed, u256(new(big.Int).SetUint64(uint64(period)))...)
	packed = append(packed, u256(amount)...)
	packed = append(packed, lock)
	packed = append(packed, u256(big.NewInt(int64(expiry)))...)
	return crypto.Keccak256(packed)
}

// PrincipalDigest returns the digest signed to authorize the request
// and claim steps of a principal withdrawal. Both steps use the same
// shape; single-use digests keep them distinct because each step burns
// its own signature.
func PrincipalDigest(ledger, caller common.Address, stakeID int64, expiry dpledger.UnixTime) []byte {
	var packed []byte
	packed = append(packed, ledger.Bytes()...)
	packed = append(packed, caller.Bytes()...)
	packed = append(packed, u256(big.NewInt(stakeID))...)
	packed = append(packed, u256(big.NewInt(int64(expiry)))...)
	return crypto.Keccak256(packed)
}

var interestArgs abi.Arguments

func init() {
	address := newABIType("address")
	uint256 := newABIType("uint256")
	uint256Arr := newABIType("uint256[]")
	interestArgs = abi.Arguments{
		{Type: address},
		{Type: address},
		{Type: uint256},
		{Type: uint256Arr},
		{Type: uint256Arr},
		{Type: uint256},
	}
}

func newABIType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// InterestDigest returns the digest signed to authorize an interest
// claim over the given months and amounts.
func InterestDigest(ledger, caller common.Address, stakeID int64, months []uint64, interests []*big.Int, expiry dpledger.UnixTime) ([]byte, error) {
	ms := make([]*big.Int, len(months))
	for i, m := range months {
		ms[i] = new(big.Int).SetUint64(m)
	}
	packed, err := interestArgs.Pack(
		ledger,
		caller,
		big.NewInt(stakeID),
		ms,
		interests,
		big.NewInt(int64(expiry)),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "abi encode")
	}
	return crypto.Keccak256(packed), nil
}

// u256 encodes an amount as a 32 byte big endian word.
func u256(v *big.Int) []byte {
	return math.U256Bytes(new(big.Int).Set(v))
}
