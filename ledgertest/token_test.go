package ledgertest

import (
	"math/big"
	"testing"

	"github.com/dp-one/dpledger/ledgertest/assert"
	"github.com/dp-one/dpledger/store"
)

func TestTokenTransferFrom(t *testing.T) {
	db := store.MemStore()
	spender := RandomAddress()
	alice := RandomAddress()
	bob := RandomAddress()
	tok := NewToken("test", spender)

	tok.Mint(db, alice, big.NewInt(100))
	tok.Approve(db, alice, big.NewInt(60))

	assert.Nil(t, tok.TransferFrom(db, alice, bob, big.NewInt(50)))

	balance, err := tok.BalanceOf(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(50), balance.Int64())
	balance, err = tok.BalanceOf(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(50), balance.Int64())
	allowance, err := tok.Allowance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(10), allowance.Int64())

	// 50 left but only 10 still allowed.
	err = tok.TransferFrom(db, alice, bob, big.NewInt(20))
	assert.IsErr(t, ErrTransferRefused, err)
}

func TestTokenFailureInjection(t *testing.T) {
	db := store.MemStore()
	tok := NewToken("test", RandomAddress())
	acc := RandomAddress()
	tok.Mint(db, acc, big.NewInt(10))
	tok.Approve(db, acc, big.NewInt(10))

	tok.SetFailure("node is offline")
	err := tok.TransferFrom(db, acc, RandomAddress(), big.NewInt(1))
	assert.IsErr(t, ErrTransferRefused, err)

	tok.SetFailure("")
	assert.Nil(t, tok.TransferFrom(db, acc, RandomAddress(), big.NewInt(1)))
}
