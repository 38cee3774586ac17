package stablestake

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/dp-one/dpledger"
	"github.com/dp-one/dpledger/errors"
	"github.com/dp-one/dpledger/ledgertest"
	"github.com/dp-one/dpledger/store"
)

// unit is one staking token in its smallest denomination.
const unit = 1_000_000

// fixture wires a gate to an in-memory store, two tokens and a fresh
// authorizer, with the pool cap already raised so stakes are admitted.
type fixture struct {
	t    *testing.T
	db   dpledger.CacheableKVStore
	gate *Gate

	self   common.Address
	owner  common.Address
	signer *ledgertest.Signer

	stakingPool common.Address
	lockingPool common.Address
	stakeToken  *ledgertest.Token
	lockToken   *ledgertest.Token

	user common.Address
	now  dpledger.UnixTime
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		t:           t,
		db:          store.MemStore(),
		self:        ledgertest.RandomAddress(),
		owner:       ledgertest.RandomAddress(),
		signer:      ledgertest.NewSigner(),
		stakingPool: ledgertest.RandomAddress(),
		lockingPool: ledgertest.RandomAddress(),
		user:        ledgertest.RandomAddress(),
		now:         1700000000,
	}
	f.stakeToken = ledgertest.NewToken("stake", f.self)
	f.lockToken = ledgertest.NewToken("lock", f.self)

	stakeTokenAddr := ledgertest.RandomAddress()
	lockTokenAddr := ledgertest.RandomAddress()
	tokens := map[common.Address]Token{
		stakeTokenAddr: f.stakeToken,
		lockTokenAddr:  f.lockToken,
	}
	f.gate = NewGate(f.self, func(addr common.Address) (Token, error) {
		tok, ok := tokens[addr]
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "no token client for %s", addr)
		}
		return tok, nil
	})

	err := f.gate.Init(f.db, GenesisConfig{
		Owner:        f.owner,
		AuthSigner:   f.signer.Address(),
		StakingToken: stakeTokenAddr,
		StakingPool:  f.stakingPool,
		LockingToken: lockTokenAddr,
		LockingPool:  f.lockingPool,
	})
	require.NoError(t, err)

	_, err = f.gate.UpdateTotalMaxStakingPool(f.db, f.owner, big.NewInt(10_000_000*unit))
	require.NoError(t, err)

	return f
}

// fund credits the user with staking tokens and approves the ledger to
// pull them.
func (f *fixture) fund(user common.Address, amount *big.Int) {
	f.stakeToken.Mint(f.db, user, amount)
	f.stakeToken.Approve(f.db, user, amount)
}

// fundLock credits locking tokens (raising the user's tier) and
// approves the ledger.
func (f *fixture) fundLock(user common.Address, amount *big.Int) {
	f.lockToken.Mint(f.db, user, amount)
	f.lockToken.Approve(f.db, user, amount)
}

// fundRewards gives the staking pool funds plus an allowance so it can
// pay principal and interest back out.
func (f *fixture) fundRewards(amount *big.Int) {
	f.stakeToken.Mint(f.db, f.stakingPool, amount)
	f.stakeToken.Approve(f.db, f.stakingPool, amount)
}

func (f *fixture) stakeMsg(user common.Address, class AdmissionClass, period uint32, amount *big.Int, tokenLocked bool) *StakeMsg {
	msg := &StakeMsg{
		Class:       class,
		Period:      period,
		Amount:      amount,
		TokenLocked: tokenLocked,
		Expiry:      f.now + 3600,
	}
	digest := StakeDigest(f.self, user, msg.Class, msg.Period, msg.Amount, msg.TokenLocked, msg.Expiry)
	msg.Signature = f.signer.Sign(digest)
	return msg
}

func (f *fixture) requestMsg(user common.Address, stakeID int64) *RequestWithdrawPrincipalMsg {
	msg := &RequestWithdrawPrincipalMsg{StakeID: stakeID, Expiry: f.now + 3600}
	msg.Signature = f.signer.Sign(PrincipalDigest(f.self, user, stakeID, msg.Expiry))
	return msg
}

func (f *fixture) withdrawMsg(user common.Address, stakeID int64) *WithdrawPrincipalMsg {
	// The expiry offset keeps this digest distinct from the request
	// digest of the same position.
	msg := &WithdrawPrincipalMsg{StakeID: stakeID, Expiry: f.now + 7200}
	msg.Signature = f.signer.Sign(PrincipalDigest(f.self, user, stakeID, msg.Expiry))
	return msg
}

func (f *fixture) interestMsg(user common.Address, stakeID int64, months []uint64, interests []*big.Int) *WithdrawInterestMsg {
	msg := &WithdrawInterestMsg{
		StakeID:   stakeID,
		Months:    months,
		Interests: interests,
		Expiry:    f.now + 3600,
	}
	digest, err := InterestDigest(f.self, user, stakeID, months, interests, msg.Expiry)
	require.NoError(f.t, err)
	msg.Signature = f.signer.Sign(digest)
	return msg
}

// mustStake funds the user and admits a default personal stake,
// returning the position id.
func (f *fixture) mustStake(user common.Address, amount *big.Int) int64 {
	f.t.Helper()
	f.fund(user, amount)
	res, err := f.gate.Stake(f.db, f.now, user, f.stakeMsg(user, ClassPersonal, 6, amount, false))
	require.NoError(f.t, err)
	return res.StakeID
}

func (f *fixture) balance(token *ledgertest.Token, account common.Address) *big.Int {
	b, err := token.BalanceOf(f.db, account)
	require.NoError(f.t, err)
	return b
}
