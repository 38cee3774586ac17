package stablestake

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dp-one/dpledger"
	"github.com/dp-one/dpledger/errors"
	"github.com/dp-one/dpledger/orm"
)

// AdmissionClass separates personal from institutional stakes. The class
// is attested by the authorizer, not self-declared.
type AdmissionClass uint8

const (
	ClassPersonal      AdmissionClass = 0
	ClassInstitutional AdmissionClass = 1
)

// Tier is the bonus band derived from the caller's locking token
// balance at admission time.
type Tier uint8

const (
	TierNone Tier = iota
	TierBronze
	TierSilver
	TierGold
	TierVIP

	tierCount = 5
)

// String returns the display name of the tier.
func (t Tier) String() string {
	switch t {
	case TierNone:
		return "NoTier"
	case TierBronze:
		return "Bronze"
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	case TierVIP:
		return "VIP"
	}
	return "invalid"
}

// StakeState is the lifecycle state of a position. Transitions are
// strictly forward: Open, then WithdrawRequested, then Closed.
type StakeState uint8

const (
	StakeOpen StakeState = iota
	StakeWithdrawRequested
	StakeClosed
)

const (
	// ppmUnit is the parts-per-million denominator of all rates.
	ppmUnit = 1_000_000

	// minRatePpm is one percent, the smallest rate any period or tier
	// bonus may carry.
	minRatePpm = 10_000

	// monthSeconds is the length of one interest month. The limiter
	// index of a claimed month is (month - stakingDate) / monthSeconds.
	monthSeconds = 31 * 24 * 60 * 60

	// minInstitutionalPeriod is the shortest period, in months, an
	// institutional stake may use.
	minInstitutionalPeriod = 12
)

// Stake is a single custody position. Rates and the tier are frozen at
// admission time; later configuration changes never touch an open
// position.
type Stake struct {
	Owner       common.Address `json:"owner"`
	ID          int64          `json:"id"`
	Class       AdmissionClass `json:"class"`
	Period      uint32         `json:"period"`
	Amount      *big.Int       `json:"amount"`
	TokenLocked bool           `json:"token_locked"`
	// LockedAmount is the companion lock pulled at admission. It is
	// returned together with the principal.
	LockedAmount *big.Int          `json:"locked_amount"`
	Tier         Tier              `json:"tier"`
	StakingDate  dpledger.UnixTime `json:"staking_date"`

	BaseInterestPpm       uint32   `json:"base_interest_ppm"`
	AdditionalInterestPpm uint32   `json:"additional_interest_ppm"`
	MonthlyInterest       *big.Int `json:"monthly_interest"`

	// InterestLimiterMonths bounds how many month windows past the
	// staking date may ever be claimed.
	InterestLimiterMonths uint32 `json:"interest_limiter_months"`
	// ClaimedMonths holds the raw month values already paid out.
	ClaimedMonths []uint64 `json:"claimed_months,omitempty"`

	State StakeState `json:"state"`
}

var _ orm.Model = (*Stake)(nil)

func (s *Stake) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", validateAddress(s.Owner))
	if s.ID < 1 {
		errs = errors.AppendField(errs, "ID", errors.ErrModel)
	}
	if s.Class != ClassPersonal && s.Class != ClassInstitutional {
		errs = errors.AppendField(errs, "Class", errors.ErrModel)
	}
	if s.Period == 0 {
		errs = errors.AppendField(errs, "Period", errors.ErrModel)
	}
	errs = errors.AppendField(errs, "Amount", validatePositiveAmount(s.Amount))
	if s.TokenLocked {
		errs = errors.AppendField(errs, "LockedAmount", validateAmount(s.LockedAmount))
	}
	if s.Tier >= tierCount {
		errs = errors.AppendField(errs, "Tier", errors.ErrModel)
	}
	errs = errors.AppendField(errs, "StakingDate", s.StakingDate.Validate())
	errs = errors.AppendField(errs, "MonthlyInterest", validateAmount(s.MonthlyInterest))
	if s.State > StakeClosed {
		errs = errors.AppendField(errs, "State", errors.ErrModel)
	}
	return errs
}

// Open returns true as long as the principal was not paid back. A
// position with a pending withdrawal request still counts against the
// caller's slots and tier allocation.
func (s *Stake) Open() bool {
	return s.State != StakeClosed
}

// Claimed returns true if given month was already paid out on this
// position.
func (s *Stake) Claimed(month uint64) bool {
	for _, m := range s.ClaimedMonths {
		if m == month {
			return true
		}
	}
	return false
}

// stakeKey builds the bucket key of a position: the owner address
// followed by the big endian position id. All positions of one owner
// form a contiguous key range.
func stakeKey(owner common.Address, id int64) []byte {
	key := make([]byte, common.AddressLength+8)
	copy(key, owner[:])
	binary.BigEndian.PutUint64(key[common.AddressLength:], uint64(id))
	return key
}

// PeriodInfo is the catalogue entry of one staking period.
type PeriodInfo struct {
	// BasePpm is the yearly base interest rate in parts per million.
	BasePpm uint32 `json:"base_ppm"`
	Active  bool   `json:"active"`
}

var _ orm.Model = (*PeriodInfo)(nil)

func (p *PeriodInfo) Validate() error {
	if p.BasePpm < minRatePpm {
		return errors.AppendField(nil, "BasePpm", errors.ErrModel)
	}
	return nil
}

func periodKey(period uint32) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, period)
	return key
}

// PoolState carries the global custody aggregates.
type PoolState struct {
	TotalStaked *big.Int `json:"total_staked"`
	TotalLocked *big.Int `json:"total_locked"`
}

var _ orm.Model = (*PoolState)(nil)

func (p *PoolState) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "TotalStaked", validateAmount(p.TotalStaked))
	errs = errors.AppendField(errs, "TotalLocked", validateAmount(p.TotalLocked))
	return errs
}

// TierConfig is the per-tier configuration: the locking token balance
// required to reach the tier, the yearly bonus rate it grants and the
// per-user principal allocation inside the tier.
type TierConfig struct {
	Threshold     *big.Int `json:"threshold"`
	AdditionalPpm uint32   `json:"additional_ppm"`
	MaxStake      *big.Int `json:"max_stake"`
}

// Configuration is the ledger singleton, managed by the owner and the
// admin roster.
type Configuration struct {
	Owner  common.Address   `json:"owner"`
	Admins []common.Address `json:"admins,omitempty"`
	Paused bool             `json:"paused"`

	// AuthSigner is the only identity whose authorizations are
	// accepted by the gate.
	AuthSigner common.Address `json:"auth_signer"`

	StakingToken common.Address `json:"staking_token"`
	LockingToken common.Address `json:"locking_token"`
	// StakingPool custodies principal and pays interest from its
	// allowance to the ledger. LockingPool custodies companion locks.
	StakingPool common.Address `json:"staking_pool"`
	LockingPool common.Address `json:"locking_pool"`

	TotalMaxStakingPool *big.Int `json:"total_max_staking_pool"`
	PersonalMinStake    *big.Int `json:"personal_min_stake"`
	LockMode            bool     `json:"lock_mode"`
	MaxStakeAttempts    int      `json:"max_stake_attempts"`

	// Bonding and withdrawal periods are published for off-ledger
	// schedulers. The gate itself does not consult them.
	BondingPeriodDays    uint32 `json:"bonding_period_days"`
	WithdrawalPeriodDays uint32 `json:"withdrawal_period_days"`

	Tiers [tierCount]TierConfig `json:"tiers"`
}

var _ orm.Model = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", validateAddress(c.Owner))
	errs = errors.AppendField(errs, "AuthSigner", validateAddress(c.AuthSigner))
	errs = errors.AppendField(errs, "StakingToken", validateAddress(c.StakingToken))
	errs = errors.AppendField(errs, "LockingToken", validateAddress(c.LockingToken))
	errs = errors.AppendField(errs, "StakingPool", validateAddress(c.StakingPool))
	errs = errors.AppendField(errs, "LockingPool", validateAddress(c.LockingPool))
	errs = errors.AppendField(errs, "TotalMaxStakingPool", validateAmount(c.TotalMaxStakingPool))
	errs = errors.AppendField(errs, "PersonalMinStake", validateAmount(c.PersonalMinStake))
	if c.MaxStakeAttempts < 1 {
		errs = errors.AppendField(errs, "MaxStakeAttempts", errors.ErrModel)
	}
	for _, t := range c.Tiers {
		errs = errors.AppendField(errs, "Tiers", validateAmount(t.Threshold))
		// A nil MaxStake means the tier allocation is unlimited.
		if t.MaxStake != nil {
			errs = errors.AppendField(errs, "Tiers", validateAmount(t.MaxStake))
		}
	}
	return errs
}

// IsAdmin returns true for the owner and every account on the admin
// roster.
func (c *Configuration) IsAdmin(addr common.Address) bool {
	if addr == c.Owner {
		return true
	}
	for _, a := range c.Admins {
		if a == addr {
			return true
		}
	}
	return false
}

func validateAddress(a common.Address) error {
	if a == (common.Address{}) {
		return errors.ErrEmpty
	}
	return nil
}

func validateAmount(a *big.Int) error {
	if a == nil {
		return errors.ErrEmpty
	}
	if a.Sign() < 0 {
		return errors.ErrAmount
	}
	return nil
}

func validatePositiveAmount(a *big.Int) error {
	if a == nil {
		return errors.ErrEmpty
	}
	if a.Sign() < 1 {
		return errors.ErrAmount
	}
	return nil
}

const configPkg = "stablestake"

func newStakeBucket() orm.ModelBucket {
	return orm.NewModelBucket("stake")
}

func newPeriodBucket() orm.ModelBucket {
	return orm.NewModelBucket("period")
}

func newPoolBucket() orm.ModelBucket {
	return orm.NewModelBucket("pool")
}

var poolStateKey = []byte("state")

func newStakeSequence() orm.Sequence {
	return orm.NewSequence("stake", "id")
}
