package stablestake

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dp-one/dpledger"
	"github.com/dp-one/dpledger/errors"
)

const (
	// defaultBasePpm is the yearly base rate of the initial periods.
	defaultBasePpm = 70_000

	defaultMaxStakeAttempts = 4
)

// defaultPeriods is the initial catalogue, in months.
var defaultPeriods = []uint32{6, 9, 12, 18}

// e18 scales whole locking tokens to their smallest unit.
func e18(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

// GenesisConfig names the collaborators a fresh ledger is wired to.
type GenesisConfig struct {
	Owner        common.Address
	AuthSigner   common.Address
	StakingToken common.Address
	StakingPool  common.Address
	LockingToken common.Address
	LockingPool  common.Address
}

// Init writes the initial configuration and period catalogue. The
// ledger starts unpaused with a zero pool cap, so no stake is admitted
// until an admin raises the cap.
func (g *Gate) Init(db dpledger.CacheableKVStore, genesis GenesisConfig) error {
	conf := &Configuration{
		Owner:            genesis.Owner,
		AuthSigner:       genesis.AuthSigner,
		StakingToken:     genesis.StakingToken,
		StakingPool:      genesis.StakingPool,
		LockingToken:     genesis.LockingToken,
		LockingPool:      genesis.LockingPool,
		MaxStakeAttempts: defaultMaxStakeAttempts,

		TotalMaxStakingPool: new(big.Int),
		PersonalMinStake:    new(big.Int),

		Tiers: [tierCount]TierConfig{
			// The NoTier threshold doubles as the base companion
			// lock minimum, so it mirrors the Bronze entry level.
			TierNone:   {Threshold: e18(100_000), AdditionalPpm: 0, MaxStake: nil},
			TierBronze: {Threshold: e18(100_000), AdditionalPpm: 10_000, MaxStake: nil},
			TierSilver: {Threshold: e18(500_000), AdditionalPpm: 15_000, MaxStake: nil},
			TierGold:   {Threshold: e18(1_000_000), AdditionalPpm: 20_000, MaxStake: nil},
			TierVIP:    {Threshold: e18(2_000_000), AdditionalPpm: 20_000, MaxStake: nil},
		},
	}

	_, err := atomic(db, func(db dpledger.KVStore) (*Result, error) {
		if err := g.ctrl.saveConfig(db, conf); err != nil {
			return nil, err
		}
		for _, p := range defaultPeriods {
			info := &PeriodInfo{BasePpm: defaultBasePpm, Active: true}
			if err := g.ctrl.periods.Put(db, periodKey(p), info); err != nil {
				return nil, errors.Wrapf(err, "period %d", p)
			}
		}
		return &Result{}, nil
	})
	return err
}
