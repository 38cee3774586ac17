package stablestake

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dp-one/dpledger"
	"github.com/dp-one/dpledger/errors"
	"github.com/dp-one/dpledger/gconf"
	"github.com/dp-one/dpledger/orm"
)

// controller owns all bucket access of the ledger. The gate and the
// admin surface go through it; nothing else writes these buckets.
type controller struct {
	stakes  orm.ModelBucket
	periods orm.ModelBucket
	pool    orm.ModelBucket
	seq     orm.Sequence
}

func newController() *controller {
	return &controller{
		stakes:  newStakeBucket(),
		periods: newPeriodBucket(),
		pool:    newPoolBucket(),
		seq:     newStakeSequence(),
	}
}

func (c *controller) loadConfig(db dpledger.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, configPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

func (c *controller) saveConfig(db dpledger.KVStore, conf *Configuration) error {
	return gconf.Save(db, configPkg, conf)
}

// create persists a new position under the next sequence id and moves
// the pool aggregates. The assigned id is written into the stake.
func (c *controller) create(db dpledger.KVStore, stake *Stake) error {
	id, err := c.seq.NextInt(db)
	if err != nil {
		return errors.Wrap(err, "stake sequence")
	}
	stake.ID = id
	if err := c.stakes.Put(db, stakeKey(stake.Owner, id), stake); err != nil {
		return errors.Wrap(err, "save stake")
	}
	return c.moveAggregates(db, stake.Amount, lockedOf(stake), 1)
}

// load returns the position of given owner, or ErrStakeNotFound.
func (c *controller) load(db dpledger.ReadOnlyKVStore, owner common.Address, id int64) (*Stake, error) {
	var stake Stake
	switch err := c.stakes.One(db, stakeKey(owner, id), &stake); {
	case err == nil:
		return &stake, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrStakeNotFound, "id %d", id)
	default:
		return nil, err
	}
}

// update overwrites an existing position.
func (c *controller) update(db dpledger.KVStore, stake *Stake) error {
	return c.stakes.Put(db, stakeKey(stake.Owner, stake.ID), stake)
}

// close transitions a position to Closed and releases its share of the
// pool aggregates.
func (c *controller) close(db dpledger.KVStore, stake *Stake) error {
	stake.State = StakeClosed
	if err := c.update(db, stake); err != nil {
		return err
	}
	return c.moveAggregates(db, stake.Amount, lockedOf(stake), -1)
}

// byOwner returns all positions of an owner, open and closed, ordered
// by id.
func (c *controller) byOwner(db dpledger.ReadOnlyKVStore, owner common.Address) ([]*Stake, error) {
	var res []*Stake
	err := c.stakes.Iterate(db, owner.Bytes(), func(_, value []byte) error {
		var stake Stake
		if err := json.Unmarshal(value, &stake); err != nil {
			return errors.Wrap(errors.ErrState, "cannot deserialize stake")
		}
		res = append(res, &stake)
		return nil
	})
	return res, err
}

// openStats aggregates the caller's open positions: their count, the
// open principal per tier and the total companion lock held.
type openStats struct {
	count       int
	tierStaked  [tierCount]*big.Int
	totalLocked *big.Int
}

func (c *controller) openStats(db dpledger.ReadOnlyKVStore, owner common.Address) (*openStats, error) {
	stats := &openStats{totalLocked: new(big.Int)}
	for i := range stats.tierStaked {
		stats.tierStaked[i] = new(big.Int)
	}
	all, err := c.byOwner(db, owner)
	if err != nil {
		return nil, err
	}
	for _, s := range all {
		if !s.Open() {
			continue
		}
		stats.count++
		stats.tierStaked[s.Tier].Add(stats.tierStaked[s.Tier], s.Amount)
		stats.totalLocked.Add(stats.totalLocked, lockedOf(s))
	}
	return stats, nil
}

func (c *controller) loadPool(db dpledger.ReadOnlyKVStore) (*PoolState, error) {
	var pool PoolState
	switch err := c.pool.One(db, poolStateKey, &pool); {
	case err == nil:
		return &pool, nil
	case errors.ErrNotFound.Is(err):
		return &PoolState{TotalStaked: new(big.Int), TotalLocked: new(big.Int)}, nil
	default:
		return nil, err
	}
}

// moveAggregates shifts the pool totals by the given amounts, adding on
// direction 1 and releasing on direction -1.
func (c *controller) moveAggregates(db dpledger.KVStore, staked, locked *big.Int, direction int64) error {
	pool, err := c.loadPool(db)
	if err != nil {
		return err
	}
	d := big.NewInt(direction)
	pool.TotalStaked.Add(pool.TotalStaked, new(big.Int).Mul(staked, d))
	pool.TotalLocked.Add(pool.TotalLocked, new(big.Int).Mul(locked, d))
	return c.pool.Put(db, poolStateKey, pool)
}

func (c *controller) periodInfo(db dpledger.ReadOnlyKVStore, period uint32) (*PeriodInfo, error) {
	var info PeriodInfo
	if err := c.periods.One(db, periodKey(period), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// activePeriod returns the catalogue entry of given period only when it
// is registered and active.
func (c *controller) activePeriod(db dpledger.ReadOnlyKVStore, period uint32) (*PeriodInfo, error) {
	info, err := c.periodInfo(db, period)
	switch {
	case err == nil && info.Active:
		return info, nil
	case err == nil || errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrInvalidPeriod, "%d months", period)
	default:
		return nil, err
	}
}

// periodEntry is one period together with its catalogue data, used by
// listings.
type periodEntry struct {
	Period uint32
	Info   PeriodInfo
}

// allPeriods returns the whole catalogue in ascending period order.
func (c *controller) allPeriods(db dpledger.ReadOnlyKVStore) ([]periodEntry, error) {
	var res []periodEntry
	err := c.periods.Iterate(db, nil, func(key, value []byte) error {
		if len(key) != 4 {
			return errors.Wrap(errors.ErrState, "malformed period key")
		}
		var info PeriodInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return errors.Wrap(errors.ErrState, "cannot deserialize period")
		}
		res = append(res, periodEntry{
			Period: uint32(key[0])<<24 | uint32(key[1])<<16 | uint32(key[2])<<8 | uint32(key[3]),
			Info:   info,
		})
		return nil
	})
	return res, err
}

// latestStakeID returns the most recently assigned position id.
func (c *controller) latestStakeID(db dpledger.ReadOnlyKVStore) (int64, error) {
	id, _, err := c.seq.Latest(db)
	return id, err
}

func lockedOf(s *Stake) *big.Int {
	if !s.TokenLocked || s.LockedAmount == nil {
		return new(big.Int)
	}
	return s.LockedAmount
}
