package stablestake

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dp-one/dpledger"
)

// UserStakeInfo is the per-user admission summary served to front ends.
type UserStakeInfo struct {
	TierName string
	// EligibleAdditionalInterestPpm is the bonus rate a new stake of
	// this user would currently earn.
	EligibleAdditionalInterestPpm uint32
	// RemainingStakingAllocation is the principal the user can still
	// place in the current tier. Nil means the tier carries no
	// allocation and the user is only bound by the global cap.
	RemainingStakingAllocation *big.Int
	// RemainingStakeSlots is how many more open positions the user may
	// hold.
	RemainingStakeSlots int
	// AvailableStakeBalance and AvailableLockedBalance are the user's
	// wallet balances of the two tokens.
	AvailableStakeBalance  *big.Int
	AvailableLockedBalance *big.Int
	// TotalLockedTokens is the companion lock currently held for the
	// user's open positions.
	TotalLockedTokens *big.Int
}

// UserStakeInfo reports the admission state of given user under given
// class.
func (g *Gate) UserStakeInfo(db dpledger.ReadOnlyKVStore, user common.Address, class AdmissionClass) (*UserStakeInfo, error) {
	conf, err := g.ctrl.loadConfig(db)
	if err != nil {
		return nil, err
	}
	stakingToken, err := g.tokens(conf.StakingToken)
	if err != nil {
		return nil, err
	}
	lockingToken, err := g.tokens(conf.LockingToken)
	if err != nil {
		return nil, err
	}
	stakeBalance, err := stakingToken.BalanceOf(db, user)
	if err != nil {
		return nil, err
	}
	lockedBalance, err := lockingToken.BalanceOf(db, user)
	if err != nil {
		return nil, err
	}

	tier := classTierOf(conf, lockedBalance, class)
	stats, err := g.ctrl.openStats(db, user)
	if err != nil {
		return nil, err
	}

	// A tier without an allocation admits without limit, which the
	// view reports as nil rather than a zero budget.
	var remaining *big.Int
	if max := conf.Tiers[tier].MaxStake; max != nil {
		remaining = new(big.Int).Sub(max, stats.tierStaked[tier])
		if remaining.Sign() < 0 {
			remaining.SetInt64(0)
		}
	}
	slots := conf.MaxStakeAttempts - stats.count
	if slots < 0 {
		slots = 0
	}

	return &UserStakeInfo{
		TierName:                      tier.String(),
		EligibleAdditionalInterestPpm: conf.Tiers[tier].AdditionalPpm,
		RemainingStakingAllocation:    remaining,
		RemainingStakeSlots:           slots,
		AvailableStakeBalance:         stakeBalance,
		AvailableLockedBalance:        lockedBalance,
		TotalLockedTokens:             stats.totalLocked,
	}, nil
}

// TierInfo is one row of the tier table.
type TierInfo struct {
	Tier          Tier
	Name          string
	Threshold     *big.Int
	AdditionalPpm uint32
	MaxStake      *big.Int
}

// AllTiers returns the configured tier table, NoTier first.
func (g *Gate) AllTiers(db dpledger.ReadOnlyKVStore) ([]TierInfo, error) {
	conf, err := g.ctrl.loadConfig(db)
	if err != nil {
		return nil, err
	}
	res := make([]TierInfo, tierCount)
	for t := TierNone; t < tierCount; t++ {
		res[t] = TierInfo{
			Tier:          t,
			Name:          t.String(),
			Threshold:     conf.Tiers[t].Threshold,
			AdditionalPpm: conf.Tiers[t].AdditionalPpm,
			MaxStake:      conf.Tiers[t].MaxStake,
		}
	}
	return res, nil
}

// PeriodListing is the period catalogue together with the global
// custody aggregates.
type PeriodListing struct {
	Periods []uint32
	// Rates and Active are pairwise with Periods.
	Rates  []uint32
	Active []bool
	// TotalActive counts the currently admissible periods.
	TotalActive int
	TotalStaked *big.Int
	TotalLocked *big.Int
}

// PeriodList returns the whole period catalogue in ascending period
// order, plus pool totals.
func (g *Gate) PeriodList(db dpledger.ReadOnlyKVStore) (*PeriodListing, error) {
	entries, err := g.ctrl.allPeriods(db)
	if err != nil {
		return nil, err
	}
	pool, err := g.ctrl.loadPool(db)
	if err != nil {
		return nil, err
	}
	listing := &PeriodListing{
		TotalStaked: pool.TotalStaked,
		TotalLocked: pool.TotalLocked,
	}
	for _, e := range entries {
		listing.Periods = append(listing.Periods, e.Period)
		listing.Rates = append(listing.Rates, e.Info.BasePpm)
		listing.Active = append(listing.Active, e.Info.Active)
		if e.Info.Active {
			listing.TotalActive++
		}
	}
	return listing, nil
}

// StakeDetail returns one position of given user.
func (g *Gate) StakeDetail(db dpledger.ReadOnlyKVStore, user common.Address, id int64) (*Stake, error) {
	return g.ctrl.load(db, user, id)
}

// UserStakes returns all positions of given user, open and closed,
// ordered by id.
func (g *Gate) UserStakes(db dpledger.ReadOnlyKVStore, user common.Address) ([]*Stake, error) {
	return g.ctrl.byOwner(db, user)
}

// CurrentStakeID returns the most recently assigned position id. Zero
// means no position was ever admitted.
func (g *Gate) CurrentStakeID(db dpledger.ReadOnlyKVStore) (int64, error) {
	return g.ctrl.latestStakeID(db)
}

// UserTier maps a locking token balance to a tier, ignoring the class
// cap.
func (g *Gate) UserTier(db dpledger.ReadOnlyKVStore, lockedBalance *big.Int) (Tier, error) {
	conf, err := g.ctrl.loadConfig(db)
	if err != nil {
		return TierNone, err
	}
	return tierOf(conf, lockedBalance), nil
}

// GlobalUserTier returns the tier a new stake of given user and class
// would be admitted with, based on the user's current locking token
// balance.
func (g *Gate) GlobalUserTier(db dpledger.ReadOnlyKVStore, user common.Address, class AdmissionClass) (Tier, error) {
	conf, err := g.ctrl.loadConfig(db)
	if err != nil {
		return TierNone, err
	}
	lockingToken, err := g.tokens(conf.LockingToken)
	if err != nil {
		return TierNone, err
	}
	balance, err := lockingToken.BalanceOf(db, user)
	if err != nil {
		return TierNone, err
	}
	return classTierOf(conf, balance, class), nil
}

// TierMinimumLocked returns the companion lock amount charged for a
// stake admitted in given tier.
func (g *Gate) TierMinimumLocked(db dpledger.ReadOnlyKVStore, tier Tier) (*big.Int, error) {
	conf, err := g.ctrl.loadConfig(db)
	if err != nil {
		return nil, err
	}
	return tierMinimumLocked(conf, tier), nil
}

// Config returns a copy of the current configuration singleton.
func (g *Gate) Config(db dpledger.ReadOnlyKVStore) (*Configuration, error) {
	return g.ctrl.loadConfig(db)
}

// Pool returns the global custody aggregates.
func (g *Gate) Pool(db dpledger.ReadOnlyKVStore) (*PoolState, error) {
	return g.ctrl.loadPool(db)
}
