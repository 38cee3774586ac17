package stablestake

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dp-one/dpledger"
)

// Token is the external value-token collaborator. Implementations route
// their balance mutations through the same store the ledger writes to,
// so a failed call rolls back token movement together with ledger
// state.
//
// TransferFrom moves funds on behalf of the ledger and must enforce the
// allowance granted by the source to the ledger, mirroring the ERC-20
// transferFrom semantics the custodians operate under.
type Token interface {
	TransferFrom(db dpledger.KVStore, from, to common.Address, amount *big.Int) error
	Allowance(db dpledger.ReadOnlyKVStore, owner common.Address) (*big.Int, error)
	BalanceOf(db dpledger.ReadOnlyKVStore, account common.Address) (*big.Int, error)
}

// TokenResolver resolves a configured token address to its client. The
// embedding application provides it, which keeps token rotation a pure
// configuration change.
type TokenResolver func(addr common.Address) (Token, error)
