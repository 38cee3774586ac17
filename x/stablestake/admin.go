package stablestake

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dp-one/dpledger"
	"github.com/dp-one/dpledger/errors"
)

// The admin surface. The owner manages the admin roster; admins (and
// the owner) manage operational parameters and the period catalogue.
// None of these calls is signature gated and none is blocked by pause,
// so a paused ledger can still be reconfigured and unpaused.

// AddOrRemoveAdmin adds the account to the admin roster or removes it.
func (g *Gate) AddOrRemoveAdmin(db dpledger.CacheableKVStore, sender, admin common.Address, enabled bool) (*Result, error) {
	return g.updateConfig(db, func(conf *Configuration) (Event, error) {
		if sender != conf.Owner {
			return nil, ErrNotOwner
		}
		if admin == (common.Address{}) {
			return nil, ErrInvalidAddress
		}
		roster := conf.Admins[:0:0]
		for _, a := range conf.Admins {
			if a != admin {
				roster = append(roster, a)
			}
		}
		if enabled {
			roster = append(roster, admin)
		}
		conf.Admins = roster
		return EventAdminUpdated{Admin: admin, Enabled: enabled}, nil
	})
}

// SetPaused pauses or unpauses all five mutating gate entry points.
func (g *Gate) SetPaused(db dpledger.CacheableKVStore, sender common.Address, paused bool) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		conf.Paused = paused
		return EventContractStateChanged{Paused: paused}, nil
	})
}

// UpdateLockMode toggles the companion lock requirement for new stakes.
func (g *Gate) UpdateLockMode(db dpledger.CacheableKVStore, sender common.Address, enabled bool) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		conf.LockMode = enabled
		return EventLockModeUpdated{Enabled: enabled}, nil
	})
}

// UpdateTotalMaxStakingPool sets the global principal cap.
func (g *Gate) UpdateTotalMaxStakingPool(db dpledger.CacheableKVStore, sender common.Address, limit *big.Int) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		if limit == nil || limit.Sign() < 1 {
			return nil, ErrMaxPoolZero
		}
		conf.TotalMaxStakingPool = new(big.Int).Set(limit)
		return EventPoolCapUpdated{TotalMaxStakingPool: conf.TotalMaxStakingPool}, nil
	})
}

// UpdateMaxStakeForTier sets the per-user principal allocation of a
// tier.
func (g *Gate) UpdateMaxStakeForTier(db dpledger.CacheableKVStore, sender common.Address, tier Tier, maxStake *big.Int) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		if tier >= tierCount {
			return nil, errors.Wrap(errors.ErrInput, "tier")
		}
		if maxStake == nil || maxStake.Sign() < 1 {
			return nil, ErrMaxStakeZero
		}
		conf.Tiers[tier].MaxStake = new(big.Int).Set(maxStake)
		return EventMaxStakeForTierUpdated{Tier: tier, MaxStake: conf.Tiers[tier].MaxStake}, nil
	})
}

// UpdateAdditionalInterestForTier sets the yearly bonus rate of a tier.
func (g *Gate) UpdateAdditionalInterestForTier(db dpledger.CacheableKVStore, sender common.Address, tier Tier, ppm uint32) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		if tier >= tierCount {
			return nil, errors.Wrap(errors.ErrInput, "tier")
		}
		if ppm < minRatePpm || ppm > ppmUnit {
			return nil, ErrInterestOutOfRange
		}
		conf.Tiers[tier].AdditionalPpm = ppm
		return EventAdditionalInterestUpdated{Tier: tier, AdditionalPpm: ppm}, nil
	})
}

// UpdateThreshold sets the locking token balance required for a tier.
// Open positions keep the tier they were admitted with.
func (g *Gate) UpdateThreshold(db dpledger.CacheableKVStore, sender common.Address, tier Tier, threshold *big.Int) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		if tier >= tierCount {
			return nil, errors.Wrap(errors.ErrInput, "tier")
		}
		if err := validateAmount(threshold); err != nil {
			return nil, errors.Wrap(err, "threshold")
		}
		conf.Tiers[tier].Threshold = new(big.Int).Set(threshold)
		return EventThresholdUpdated{Tier: tier, Threshold: conf.Tiers[tier].Threshold}, nil
	})
}

// UpdatePersonalMinStake sets the minimum principal of a personal
// stake.
func (g *Gate) UpdatePersonalMinStake(db dpledger.CacheableKVStore, sender common.Address, min *big.Int) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		if err := validateAmount(min); err != nil {
			return nil, errors.Wrap(err, "minimum")
		}
		conf.PersonalMinStake = new(big.Int).Set(min)
		return EventPersonalMinStakeUpdated{PersonalMinStake: conf.PersonalMinStake}, nil
	})
}

// UpdateBondingPeriod publishes a new bonding period.
func (g *Gate) UpdateBondingPeriod(db dpledger.CacheableKVStore, sender common.Address, days uint32) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		conf.BondingPeriodDays = days
		return EventBondingPeriodUpdated{Days: days}, nil
	})
}

// UpdateWithdrawalPeriod publishes a new withdrawal period.
func (g *Gate) UpdateWithdrawalPeriod(db dpledger.CacheableKVStore, sender common.Address, days uint32) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		conf.WithdrawalPeriodDays = days
		return EventWithdrawalPeriodUpdated{Days: days}, nil
	})
}

// UpdateStakingPoolAndReward rotates the principal and reward
// custodian.
func (g *Gate) UpdateStakingPoolAndReward(db dpledger.CacheableKVStore, sender, pool common.Address) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		if pool == (common.Address{}) {
			return nil, ErrInvalidAddress
		}
		conf.StakingPool = pool
		return EventStakingPoolAndRewardUpdated{Address: pool}, nil
	})
}

// UpdateLockingPool rotates the companion lock custodian.
func (g *Gate) UpdateLockingPool(db dpledger.CacheableKVStore, sender, pool common.Address) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		if pool == (common.Address{}) {
			return nil, ErrInvalidAddress
		}
		conf.LockingPool = pool
		return EventLockedTokenUpdated{Address: pool}, nil
	})
}

// UpdateStakingToken rotates the principal token.
func (g *Gate) UpdateStakingToken(db dpledger.CacheableKVStore, sender, token common.Address) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		if token == (common.Address{}) {
			return nil, ErrInvalidStakingToken
		}
		conf.StakingToken = token
		return EventTokenUpdated{Kind: "staking", Address: token}, nil
	})
}

// UpdateLockingToken rotates the companion lock token.
func (g *Gate) UpdateLockingToken(db dpledger.CacheableKVStore, sender, token common.Address) (*Result, error) {
	return g.adminUpdate(db, sender, func(conf *Configuration) (Event, error) {
		if token == (common.Address{}) {
			return nil, ErrInvalidLockingToken
		}
		conf.LockingToken = token
		return EventTokenUpdated{Kind: "locking", Address: token}, nil
	})
}

// AddStakingPeriod registers a new period in the catalogue. New periods
// are active immediately.
func (g *Gate) AddStakingPeriod(db dpledger.CacheableKVStore, sender common.Address, period, basePpm uint32) (*Result, error) {
	return g.periodUpdate(db, sender, period, func(info *PeriodInfo, exists bool) (Event, error) {
		if exists {
			return nil, ErrPeriodExists
		}
		if basePpm < minRatePpm {
			return nil, ErrRateTooLow
		}
		info.BasePpm = basePpm
		info.Active = true
		return EventStakingPeriod{Period: period, BasePpm: basePpm, Active: true}, nil
	})
}

// UpdateStakingPeriod changes the base rate of a registered period.
func (g *Gate) UpdateStakingPeriod(db dpledger.CacheableKVStore, sender common.Address, period, basePpm uint32) (*Result, error) {
	return g.periodUpdate(db, sender, period, func(info *PeriodInfo, exists bool) (Event, error) {
		if !exists {
			return nil, ErrPeriodNotFound
		}
		if basePpm < minRatePpm {
			return nil, ErrRateTooLow
		}
		info.BasePpm = basePpm
		return EventStakingPeriod{Period: period, BasePpm: basePpm, Active: info.Active}, nil
	})
}

// EnableStakingPeriod re-activates a disabled period at its stored
// base rate.
func (g *Gate) EnableStakingPeriod(db dpledger.CacheableKVStore, sender common.Address, period uint32) (*Result, error) {
	return g.periodUpdate(db, sender, period, func(info *PeriodInfo, exists bool) (Event, error) {
		if !exists {
			return nil, ErrPeriodNotFound
		}
		info.Active = true
		return EventStakingPeriod{Period: period, BasePpm: info.BasePpm, Active: true}, nil
	})
}

// DisableStakingPeriod removes a period from admission without
// touching positions staked under it.
func (g *Gate) DisableStakingPeriod(db dpledger.CacheableKVStore, sender common.Address, period uint32) (*Result, error) {
	return g.periodUpdate(db, sender, period, func(info *PeriodInfo, exists bool) (Event, error) {
		if !exists {
			return nil, ErrPeriodNotFound
		}
		info.Active = false
		return EventStakingPeriod{Period: period, BasePpm: info.BasePpm, Active: false}, nil
	})
}

// adminUpdate loads the configuration, lets fn mutate it under the
// admin role check and persists it together with the produced event.
func (g *Gate) adminUpdate(db dpledger.CacheableKVStore, sender common.Address, fn func(*Configuration) (Event, error)) (*Result, error) {
	return g.updateConfig(db, func(conf *Configuration) (Event, error) {
		if !conf.IsAdmin(sender) {
			return nil, ErrNotAdmin
		}
		return fn(conf)
	})
}

func (g *Gate) updateConfig(db dpledger.CacheableKVStore, fn func(*Configuration) (Event, error)) (*Result, error) {
	return atomic(db, func(db dpledger.KVStore) (*Result, error) {
		conf, err := g.ctrl.loadConfig(db)
		if err != nil {
			return nil, err
		}
		ev, err := fn(conf)
		if err != nil {
			return nil, err
		}
		if err := g.ctrl.saveConfig(db, conf); err != nil {
			return nil, err
		}
		return &Result{Events: []Event{ev}}, nil
	})
}

func (g *Gate) periodUpdate(db dpledger.CacheableKVStore, sender common.Address, period uint32, fn func(info *PeriodInfo, exists bool) (Event, error)) (*Result, error) {
	return atomic(db, func(db dpledger.KVStore) (*Result, error) {
		conf, err := g.ctrl.loadConfig(db)
		if err != nil {
			return nil, err
		}
		if !conf.IsAdmin(sender) {
			return nil, ErrNotAdmin
		}
		if period == 0 {
			return nil, ErrInvalidPeriod
		}
		var info PeriodInfo
		exists := true
		switch err := g.ctrl.periods.One(db, periodKey(period), &info); {
		case errors.ErrNotFound.Is(err):
			exists = false
		case err != nil:
			return nil, err
		}
		ev, err := fn(&info, exists)
		if err != nil {
			return nil, err
		}
		if err := g.ctrl.periods.Put(db, periodKey(period), &info); err != nil {
			return nil, err
		}
		return &Result{Events: []Event{ev}}, nil
	})
}
