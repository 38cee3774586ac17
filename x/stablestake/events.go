package stablestake

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Event is emitted by successful gate and admin calls. Events are the
// observability surface of the ledger; the embedding application
// decides how to publish them.
type Event interface {
	EventName() string
}

// EventStaked is emitted when a position is admitted.
type EventStaked struct {
	User        common.Address
	StakeID     int64
	Class       AdmissionClass
	Period      uint32
	Amount      *big.Int
	TokenLocked bool
}

func (EventStaked) EventName() string { return "Staked" }

// EventWithdrawPrincipalRequested is emitted when a withdrawal window
// is opened.
type EventWithdrawPrincipalRequested struct {
	User    common.Address
	StakeID int64
}

func (EventWithdrawPrincipalRequested) EventName() string { return "WithdrawPrincipalRequested" }

// EventWithdrawnPrincipal is emitted when a position is closed and the
// principal paid back.
type EventWithdrawnPrincipal struct {
	User    common.Address
	StakeID int64
	Amount  *big.Int
}

func (EventWithdrawnPrincipal) EventName() string { return "WithdrawnPrincipal" }

// EventForceStop is emitted when an admin closes a position.
type EventForceStop struct {
	User    common.Address
	StakeID int64
}

func (EventForceStop) EventName() string { return "ForceStop" }

// EventStakingPeriod is emitted whenever the period catalogue changes.
type EventStakingPeriod struct {
	Period  uint32
	BasePpm uint32
	Active  bool
}

func (EventStakingPeriod) EventName() string { return "StakingPeriodEvent" }

// EventAdminUpdated is emitted when the admin roster changes.
type EventAdminUpdated struct {
	Admin   common.Address
	Enabled bool
}

func (EventAdminUpdated) EventName() string { return "AdminUpdated" }

// EventContractStateChanged is emitted on pause and unpause.
type EventContractStateChanged struct {
	Paused bool
}

func (EventContractStateChanged) EventName() string { return "ContractStateChanged" }

// EventLockModeUpdated is emitted when the companion lock requirement
// is toggled.
type EventLockModeUpdated struct {
	Enabled bool
}

func (EventLockModeUpdated) EventName() string { return "LockModeUpdated" }

// EventThresholdUpdated is emitted when a tier threshold changes.
type EventThresholdUpdated struct {
	Tier      Tier
	Threshold *big.Int
}

func (EventThresholdUpdated) EventName() string { return "ThresholdUpdated" }

// EventBondingPeriodUpdated is emitted when the published bonding
// period changes.
type EventBondingPeriodUpdated struct {
	Days uint32
}

func (EventBondingPeriodUpdated) EventName() string { return "BondingPeriodUpdated" }

// EventWithdrawalPeriodUpdated is emitted when the published withdrawal
// period changes.
type EventWithdrawalPeriodUpdated struct {
	Days uint32
}

func (EventWithdrawalPeriodUpdated) EventName() string { return "WithdrawalPeriodUpdated" }

// EventStakingPoolAndRewardUpdated is emitted when the principal and
// reward custodian is rotated.
type EventStakingPoolAndRewardUpdated struct {
	Address common.Address
}

func (EventStakingPoolAndRewardUpdated) EventName() string { return "StakingPoolAndRewardUpdated" }

// EventLockedTokenUpdated is emitted when the lock custodian is
// rotated.
type EventLockedTokenUpdated struct {
	Address common.Address
}

func (EventLockedTokenUpdated) EventName() string { return "LockedTokenUpdated" }

// EventMaxStakeForTierUpdated is emitted when a tier allocation
// changes.
type EventMaxStakeForTierUpdated struct {
	Tier     Tier
	MaxStake *big.Int
}

func (EventMaxStakeForTierUpdated) EventName() string { return "MaxStakeForTierUpdated" }

// EventAdditionalInterestUpdated is emitted when a tier bonus rate
// changes.
type EventAdditionalInterestUpdated struct {
	Tier          Tier
	AdditionalPpm uint32
}

func (EventAdditionalInterestUpdated) EventName() string { return "AdditionalInterestUpdated" }

// EventPoolCapUpdated is emitted when the pool cap changes.
type EventPoolCapUpdated struct {
	TotalMaxStakingPool *big.Int
}

func (EventPoolCapUpdated) EventName() string { return "PoolCapUpdated" }

// EventPersonalMinStakeUpdated is emitted when the personal minimum
// changes.
type EventPersonalMinStakeUpdated struct {
	PersonalMinStake *big.Int
}

func (EventPersonalMinStakeUpdated) EventName() string { return "PersonalMinStakeUpdated" }

// EventTokenUpdated is emitted when a token address is rotated. Kind is
// "staking" or "locking".
type EventTokenUpdated struct {
	Kind    string
	Address common.Address
}

func (EventTokenUpdated) EventName() string { return "TokenUpdated" }

// Result is returned by every successful mutating call.
type Result struct {
	// StakeID identifies the position the call touched. Zero for
	// calls that do not target a position.
	StakeID int64
	Events  []Event
}
