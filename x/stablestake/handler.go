package stablestake

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dp-one/dpledger"
	"github.com/dp-one/dpledger/errors"
	"github.com/dp-one/dpledger/x/sigs"
)

// Gate is the admission gate and the only caller-facing entry point of
// the ledger. Every mutating call runs inside a cache wrap: either all
// of its state writes and token movements apply, or none do.
type Gate struct {
	// self is the ledger identity bound into every authorization
	// digest.
	self     common.Address
	verifier sigs.Verifier
	guard    *sigs.ReplayGuard
	tokens   TokenResolver
	ctrl     *controller
}

// NewGate returns a gate identified by self towards the authorizer.
// The resolver supplies clients for the configured token addresses.
func NewGate(self common.Address, tokens TokenResolver) *Gate {
	return &Gate{
		self:     self,
		verifier: sigs.Secp256k1Verifier{},
		guard:    sigs.NewReplayGuard(),
		tokens:   tokens,
		ctrl:     newController(),
	}
}

// atomic runs fn against a cache wrap of db and commits only on
// success.
func atomic(db dpledger.CacheableKVStore, fn func(dpledger.KVStore) (*Result, error)) (*Result, error) {
	cache := db.CacheWrap()
	res, err := fn(cache)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot persist")
	}
	return res, nil
}

// Stake admits a new position for sender.
func (g *Gate) Stake(db dpledger.CacheableKVStore, now dpledger.UnixTime, sender common.Address, msg *StakeMsg) (*Result, error) {
	return atomic(db, func(db dpledger.KVStore) (*Result, error) {
		return g.stake(db, now, sender, msg)
	})
}

func (g *Gate) stake(db dpledger.KVStore, now dpledger.UnixTime, sender common.Address, msg *StakeMsg) (*Result, error) {
	conf, err := g.ctrl.loadConfig(db)
	if err != nil {
		return nil, err
	}
	if conf.Paused {
		return nil, ErrPaused
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	digest := StakeDigest(g.self, sender, msg.Class, msg.Period, msg.Amount, msg.TokenLocked, msg.Expiry)
	if err := g.authorize(db, conf, now, msg.Expiry, digest, msg.Signature); err != nil {
		return nil, err
	}

	period, err := g.ctrl.activePeriod(db, msg.Period)
	if err != nil {
		return nil, err
	}
	if msg.Class == ClassInstitutional && msg.Period < minInstitutionalPeriod {
		return nil, ErrInstitutionalTerm
	}
	if msg.Class == ClassPersonal && msg.Amount.Cmp(conf.PersonalMinStake) < 0 {
		return nil, ErrPersonalStakeTooLow
	}

	pool, err := g.ctrl.loadPool(db)
	if err != nil {
		return nil, err
	}
	newTotal := new(big.Int).Add(pool.TotalStaked, msg.Amount)
	if conf.TotalMaxStakingPool == nil || newTotal.Cmp(conf.TotalMaxStakingPool) > 0 {
		return nil, ErrPoolLimit
	}

	stats, err := g.ctrl.openStats(db, sender)
	if err != nil {
		return nil, err
	}
	if stats.count >= conf.MaxStakeAttempts {
		return nil, ErrStakeCountOverMax
	}

	lockingToken, err := g.tokens(conf.LockingToken)
	if err != nil {
		return nil, err
	}
	lockedBalance, err := lockingToken.BalanceOf(db, sender)
	if err != nil {
		return nil, err
	}
	tier := classTierOf(conf, lockedBalance, msg.Class)

	if conf.LockMode {
		if !msg.TokenLocked {
			return nil, ErrTokenLockRequired
		}
		minLock := conf.Tiers[TierNone].Threshold
		if minLock != nil && lockedBalance.Cmp(minLock) < 0 {
			return nil, ErrBelowMinimumLock
		}
	}

	maxStake := conf.Tiers[tier].MaxStake
	if maxStake != nil && maxStake.Sign() > 0 {
		inTier := new(big.Int).Add(stats.tierStaked[tier], msg.Amount)
		if inTier.Cmp(maxStake) > 0 {
			return nil, ErrExceedsMaxStake
		}
	}

	if err := g.guard.MarkUsed(db, digest, sender, now); err != nil {
		return nil, err
	}

	stakingToken, err := g.tokens(conf.StakingToken)
	if err != nil {
		return nil, err
	}
	if err := stakingToken.TransferFrom(db, sender, conf.StakingPool, msg.Amount); err != nil {
		return nil, err
	}
	lockedAmount := new(big.Int)
	if msg.TokenLocked {
		lockedAmount = tierMinimumLocked(conf, tier)
		if lockedAmount.Sign() > 0 {
			if err := lockingToken.TransferFrom(db, sender, conf.LockingPool, lockedAmount); err != nil {
				return nil, err
			}
		}
	}

	stake := &Stake{
		Owner:                 sender,
		Class:                 msg.Class,
		Period:                msg.Period,
		Amount:                new(big.Int).Set(msg.Amount),
		TokenLocked:           msg.TokenLocked,
		LockedAmount:          lockedAmount,
		Tier:                  tier,
		StakingDate:           now,
		BaseInterestPpm:       period.BasePpm,
		AdditionalInterestPpm: conf.Tiers[tier].AdditionalPpm,
		MonthlyInterest:       monthlyInterest(msg.Amount, period.BasePpm, conf.Tiers[tier].AdditionalPpm),
		InterestLimiterMonths: msg.Period,
		State:                 StakeOpen,
	}
	if err := g.ctrl.create(db, stake); err != nil {
		return nil, err
	}

	return &Result{
		StakeID: stake.ID,
		Events: []Event{EventStaked{
			User:        sender,
			StakeID:     stake.ID,
			Class:       stake.Class,
			Period:      stake.Period,
			Amount:      stake.Amount,
			TokenLocked: stake.TokenLocked,
		}},
	}, nil
}

// RequestWithdrawPrincipal opens the withdrawal window of a position.
// The principal can only be claimed after this step.
func (g *Gate) RequestWithdrawPrincipal(db dpledger.CacheableKVStore, now dpledger.UnixTime, sender common.Address, msg *RequestWithdrawPrincipalMsg) (*Result, error) {
	return atomic(db, func(db dpledger.KVStore) (*Result, error) {
		return g.requestWithdrawPrincipal(db, now, sender, msg)
	})
}

func (g *Gate) requestWithdrawPrincipal(db dpledger.KVStore, now dpledger.UnixTime, sender common.Address, msg *RequestWithdrawPrincipalMsg) (*Result, error) {
	conf, err := g.ctrl.loadConfig(db)
	if err != nil {
		return nil, err
	}
	if conf.Paused {
		return nil, ErrPaused
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	digest := PrincipalDigest(g.self, sender, msg.StakeID, msg.Expiry)
	if err := g.authorize(db, conf, now, msg.Expiry, digest, msg.Signature); err != nil {
		return nil, err
	}

	stake, err := g.ctrl.load(db, sender, msg.StakeID)
	if err != nil {
		return nil, err
	}
	if stake.State != StakeOpen {
		return nil, ErrAlreadyClosed
	}

	if err := g.guard.MarkUsed(db, digest, sender, now); err != nil {
		return nil, err
	}
	stake.State = StakeWithdrawRequested
	if err := g.ctrl.update(db, stake); err != nil {
		return nil, err
	}

	return &Result{
		StakeID: stake.ID,
		Events:  []Event{EventWithdrawPrincipalRequested{User: sender, StakeID: stake.ID}},
	}, nil
}

// WithdrawPrincipal pays the principal and any companion lock back to
// sender and closes the position.
func (g *Gate) WithdrawPrincipal(db dpledger.CacheableKVStore, now dpledger.UnixTime, sender common.Address, msg *WithdrawPrincipalMsg) (*Result, error) {
	return atomic(db, func(db dpledger.KVStore) (*Result, error) {
		return g.withdrawPrincipal(db, now, sender, msg)
	})
}

func (g *Gate) withdrawPrincipal(db dpledger.KVStore, now dpledger.UnixTime, sender common.Address, msg *WithdrawPrincipalMsg) (*Result, error) {
	conf, err := g.ctrl.loadConfig(db)
	if err != nil {
		return nil, err
	}
	if conf.Paused {
		return nil, ErrPaused
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	digest := PrincipalDigest(g.self, sender, msg.StakeID, msg.Expiry)
	if err := g.authorize(db, conf, now, msg.Expiry, digest, msg.Signature); err != nil {
		return nil, err
	}

	stake, err := g.ctrl.load(db, sender, msg.StakeID)
	if err != nil {
		return nil, err
	}
	switch stake.State {
	case StakeClosed:
		return nil, ErrAlreadyClaimed
	case StakeOpen:
		return nil, ErrWithdrawNotRequested
	}

	if err := g.guard.MarkUsed(db, digest, sender, now); err != nil {
		return nil, err
	}

	stakingToken, err := g.tokens(conf.StakingToken)
	if err != nil {
		return nil, err
	}
	if err := stakingToken.TransferFrom(db, conf.StakingPool, sender, stake.Amount); err != nil {
		return nil, err
	}
	if locked := lockedOf(stake); locked.Sign() > 0 {
		lockingToken, err := g.tokens(conf.LockingToken)
		if err != nil {
			return nil, err
		}
		if err := lockingToken.TransferFrom(db, conf.LockingPool, sender, locked); err != nil {
			return nil, err
		}
	}

	if err := g.ctrl.close(db, stake); err != nil {
		return nil, err
	}

	return &Result{
		StakeID: stake.ID,
		Events: []Event{EventWithdrawnPrincipal{
			User:    sender,
			StakeID: stake.ID,
			Amount:  stake.Amount,
		}},
	}, nil
}

// WithdrawInterest pays out the interest of the named months. All
// entries are validated before any value moves.
func (g *Gate) WithdrawInterest(db dpledger.CacheableKVStore, now dpledger.UnixTime, sender common.Address, msg *WithdrawInterestMsg) (*Result, error) {
	return atomic(db, func(db dpledger.KVStore) (*Result, error) {
		return g.withdrawInterest(db, now, sender, msg)
	})
}

func (g *Gate) withdrawInterest(db dpledger.KVStore, now dpledger.UnixTime, sender common.Address, msg *WithdrawInterestMsg) (*Result, error) {
	conf, err := g.ctrl.loadConfig(db)
	if err != nil {
		return nil, err
	}
	if conf.Paused {
		return nil, ErrPaused
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if len(msg.Months) != len(msg.Interests) {
		return nil, ErrMismatchedArrays
	}
	if len(msg.Months) == 0 {
		return nil, ErrMinOneMonth
	}

	digest, err := InterestDigest(g.self, sender, msg.StakeID, msg.Months, msg.Interests, msg.Expiry)
	if err != nil {
		return nil, err
	}
	signer, err := g.verifier.RecoverSigner(digest, msg.Signature)
	if err != nil {
		return nil, err
	}
	if signer != conf.AuthSigner {
		return nil, ErrInvalidSigner
	}

	stake, err := g.ctrl.load(db, sender, msg.StakeID)
	if err != nil {
		return nil, err
	}
	if stake.State == StakeClosed {
		return nil, ErrAlreadyClaimed
	}

	// Per-month checks run before the expiry of the authorization so a
	// malformed claim is reported as such even on a stale signature.
	total := new(big.Int)
	for i, month := range msg.Months {
		interest := msg.Interests[i]
		if interest == nil {
			return nil, errors.Wrapf(ErrInterestTooLow, "month %d", month)
		}
		if interest.Cmp(stake.MonthlyInterest) > 0 {
			return nil, errors.Wrapf(ErrInterestTooHigh, "month %d", month)
		}
		if month < uint64(stake.StakingDate) {
			return nil, errors.Wrapf(ErrMonthExceedsLimiter, "month %d", month)
		}
		if idx := (month - uint64(stake.StakingDate)) / monthSeconds; idx >= uint64(stake.InterestLimiterMonths) {
			return nil, errors.Wrapf(ErrMonthExceedsLimiter, "month %d", month)
		}
		if stake.Claimed(month) {
			return nil, errors.Wrapf(ErrAlreadyWithdrawn, "month %d", month)
		}
		if interest.Sign() < 1 {
			return nil, errors.Wrapf(ErrInterestTooLow, "month %d", month)
		}
		stake.ClaimedMonths = append(stake.ClaimedMonths, month)
		total.Add(total, interest)
	}

	if now > msg.Expiry {
		return nil, ErrSignatureExpired
	}
	if used, err := g.guard.Used(db, digest); err != nil {
		return nil, err
	} else if used {
		return nil, ErrSignatureUsed
	}
	if err := g.guard.MarkUsed(db, digest, sender, now); err != nil {
		return nil, err
	}

	stakingToken, err := g.tokens(conf.StakingToken)
	if err != nil {
		return nil, err
	}
	allowance, err := stakingToken.Allowance(db, conf.StakingPool)
	if err != nil {
		return nil, err
	}
	if allowance.Cmp(total) < 0 {
		return nil, ErrPoolAllowance
	}
	if err := stakingToken.TransferFrom(db, conf.StakingPool, sender, total); err != nil {
		return nil, err
	}
	if err := g.ctrl.update(db, stake); err != nil {
		return nil, err
	}

	return &Result{StakeID: stake.ID}, nil
}

// ForceStop closes a position by admin decision. No funds move on
// ledger; settlement of a force-stopped position is an off-ledger
// custodian process.
func (g *Gate) ForceStop(db dpledger.CacheableKVStore, sender common.Address, msg *ForceStopMsg) (*Result, error) {
	return atomic(db, func(db dpledger.KVStore) (*Result, error) {
		return g.forceStop(db, sender, msg)
	})
}

func (g *Gate) forceStop(db dpledger.KVStore, sender common.Address, msg *ForceStopMsg) (*Result, error) {
	conf, err := g.ctrl.loadConfig(db)
	if err != nil {
		return nil, err
	}
	if !conf.IsAdmin(sender) {
		return nil, ErrNotAdmin
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	stake, err := g.ctrl.load(db, msg.User, msg.StakeID)
	if err != nil {
		return nil, err
	}
	if stake.State == StakeClosed {
		return nil, ErrAlreadyClaimed
	}
	if err := g.ctrl.close(db, stake); err != nil {
		return nil, err
	}

	return &Result{
		StakeID: stake.ID,
		Events:  []Event{EventForceStop{User: msg.User, StakeID: stake.ID}},
	}, nil
}

// authorize runs the shared admission checks of a signed call: the
// authorization must not be expired, must come from the configured
// signer and must not have been consumed before. It does not mark the
// digest used; callers do that once all remaining checks passed.
func (g *Gate) authorize(db dpledger.ReadOnlyKVStore, conf *Configuration, now, expiry dpledger.UnixTime, digest, sig []byte) error {
	if now > expiry {
		return ErrSignatureExpired
	}
	signer, err := g.verifier.RecoverSigner(digest, sig)
	if err != nil {
		return err
	}
	if signer != conf.AuthSigner {
		return ErrInvalidSigner
	}
	if used, err := g.guard.Used(db, digest); err != nil {
		return err
	} else if used {
		return ErrSignatureUsed
	}
	return nil
}
