package ledgertest

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dp-one/dpledger"
	"github.com/dp-one/dpledger/errors"
)

// ErrTransferRefused is returned by a token with an injected failure.
var ErrTransferRefused = errors.Register(170, "token transfer refused")

// Token is an in-store value token implementing the ledger's token
// collaborator interface. Balances and allowances live in the same
// store the ledger writes to, so a rolled back ledger call also rolls
// back token movement, exactly like the production custody setup.
//
// Allowances are granted to a single fixed spender, the ledger itself.
type Token struct {
	name    string
	spender common.Address
	failMsg string
}

// NewToken returns a token named for its store prefix. The spender is
// the ledger identity all allowances are granted to.
func NewToken(name string, spender common.Address) *Token {
	return &Token{name: name, spender: spender}
}

// SetFailure makes every following TransferFrom fail with the given
// message. An empty message clears the injection.
func (t *Token) SetFailure(msg string) {
	t.failMsg = msg
}

// Mint credits an account out of thin air.
func (t *Token) Mint(db dpledger.KVStore, account common.Address, amount *big.Int) {
	balance := t.load(db, t.balanceKey(account))
	t.store(db, t.balanceKey(account), balance.Add(balance, amount))
}

// Approve grants the spender an allowance over the owner's funds.
func (t *Token) Approve(db dpledger.KVStore, owner common.Address, amount *big.Int) {
	t.store(db, t.allowanceKey(owner), new(big.Int).Set(amount))
}

// BalanceOf implements the token collaborator interface.
func (t *Token) BalanceOf(db dpledger.ReadOnlyKVStore, account common.Address) (*big.Int, error) {
	return t.load(db, t.balanceKey(account)), nil
}

// Allowance implements the token collaborator interface.
func (t *Token) Allowance(db dpledger.ReadOnlyKVStore, owner common.Address) (*big.Int, error) {
	return t.load(db, t.allowanceKey(owner)), nil
}

// TransferFrom moves funds on behalf of the spender, enforcing the
// owner's allowance.
func (t *Token) TransferFrom(db dpledger.KVStore, from, to common.Address, amount *big.Int) error {
	if t.failMsg != "" {
		return errors.Wrap(ErrTransferRefused, t.failMsg)
	}
	allowance := t.load(db, t.allowanceKey(from))
	if allowance.Cmp(amount) < 0 {
		return errors.Wrapf(ErrTransferRefused, "%s: allowance too low", t.name)
	}
	balance := t.load(db, t.balanceKey(from))
	if balance.Cmp(amount) < 0 {
		return errors.Wrapf(ErrTransferRefused, "%s: balance too low", t.name)
	}
	t.store(db, t.allowanceKey(from), allowance.Sub(allowance, amount))
	t.store(db, t.balanceKey(from), balance.Sub(balance, amount))
	dest := t.load(db, t.balanceKey(to))
	t.store(db, t.balanceKey(to), dest.Add(dest, amount))
	return nil
}

func (t *Token) balanceKey(account common.Address) []byte {
	return []byte("tok:" + t.name + ":b:" + account.Hex())
}

func (t *Token) allowanceKey(owner common.Address) []byte {
	return []byte("tok:" + t.name + ":a:" + owner.Hex() + ":" + t.spender.Hex())
}

func (t *Token) load(db dpledger.ReadOnlyKVStore, key []byte) *big.Int {
	raw, err := db.Get(key)
	if err != nil || raw == nil {
		return new(big.Int)
	}
	return new(big.Int).SetBytes(raw)
}

func (t *Token) store(db dpledger.KVStore, key []byte, v *big.Int) {
	if err := db.Set(key, v.Bytes()); err != nil {
		panic(err)
	}
}
