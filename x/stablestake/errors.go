package stablestake

import "github.com/dp-one/dpledger/errors"

// Error descriptions are kept byte for byte compatible with the reason
// strings emitted by the production authorizer tooling, so callers can
// match on them.
var (
	// ErrInvalidSigner is returned when an authorization was not
	// produced by the configured signer.
	ErrInvalidSigner = errors.Register(100, "Invalid signer.")

	// ErrSignatureExpired is returned when an authorization is
	// presented after its expiry time.
	ErrSignatureExpired = errors.Register(101, "Signature expired.")

	// ErrSignatureUsed is returned when an authorization digest was
	// already consumed by an earlier call.
	ErrSignatureUsed = errors.Register(102, "Signature used.")

	// ErrInvalidPeriod is returned when staking for a period that is
	// not registered or not active.
	ErrInvalidPeriod = errors.Register(103, "Invalid period")

	// ErrPoolLimit is returned when admitting the principal would push
	// the pool total over its cap.
	ErrPoolLimit = errors.Register(104, "Pool exceeds max limit")

	// ErrPersonalStakeTooLow is returned when a personal stake is
	// below the configured minimum.
	ErrPersonalStakeTooLow = errors.Register(105, "Personal stake too low")

	// ErrInstitutionalTerm is returned when an institutional stake
	// uses a period shorter than twelve months.
	ErrInstitutionalTerm = errors.Register(106, "Institutions: min 12 months")

	// ErrStakeCountOverMax is returned when the caller already holds
	// the maximum number of open positions.
	ErrStakeCountOverMax = errors.Register(107, "Stake count over max")

	// ErrExceedsMaxStake is returned when the caller's open principal
	// in the computed tier would exceed the tier allocation.
	ErrExceedsMaxStake = errors.Register(108, "Exceeds max stake")

	// ErrTokenLockRequired is returned when lock mode is on and the
	// stake does not opt into the companion lock.
	ErrTokenLockRequired = errors.Register(109, "Token lock required")

	// ErrBelowMinimumLock is returned when lock mode is on and the
	// caller's locking token balance is under the base threshold.
	ErrBelowMinimumLock = errors.Register(110, "Amount below minimum")

	// ErrAlreadyClosed is returned when requesting withdrawal of a
	// position that already left the open state.
	ErrAlreadyClosed = errors.Register(111, "Already closed")

	// ErrAlreadyClaimed is returned when operating on a closed
	// position.
	ErrAlreadyClaimed = errors.Register(112, "Already claimed")

	// ErrStakeNotFound is returned when the caller holds no position
	// under the given id.
	ErrStakeNotFound = errors.Register(113, "Staking not found.")

	// ErrMismatchedArrays is returned when the months and interests of
	// an interest claim differ in length.
	ErrMismatchedArrays = errors.Register(114, "Mismatched array lengths")

	// ErrMinOneMonth is returned when an interest claim names no
	// months at all.
	ErrMinOneMonth = errors.Register(115, "Min 1 month required")

	// ErrMonthExceedsLimiter is returned when a claimed month lies
	// outside the position's claim window.
	ErrMonthExceedsLimiter = errors.Register(116, "Month exceeds limiter")

	// ErrAlreadyWithdrawn is returned when a month was already claimed
	// on this position.
	ErrAlreadyWithdrawn = errors.Register(117, "Already withdrawn")

	// ErrInterestTooLow is returned when a claimed amount is zero.
	ErrInterestTooLow = errors.Register(118, "Interest too low")

	// ErrInterestTooHigh is returned when a claimed amount exceeds the
	// position's monthly interest.
	ErrInterestTooHigh = errors.Register(119, "Interest too high")

	// ErrPoolAllowance is returned when the reward custodian has not
	// granted the ledger enough allowance to pay a claim.
	ErrPoolAllowance = errors.Register(120, "Insufficient pool allowance")

	// ErrPeriodExists is returned when registering a period twice.
	ErrPeriodExists = errors.Register(121, "Period is exist.")

	// ErrPeriodNotFound is returned when updating or toggling a period
	// that was never registered.
	ErrPeriodNotFound = errors.Register(122, "Period is not exist.")

	// ErrRateTooLow is returned when a period rate is under one
	// percent.
	ErrRateTooLow = errors.Register(123, "Interest rate must be at least 1%.")

	// ErrInterestOutOfRange is returned when a tier bonus is outside
	// the one to hundred percent range.
	ErrInterestOutOfRange = errors.Register(124, "Interest must be between 1% and 100%.")

	// ErrMaxPoolZero is returned when setting the pool cap to zero.
	ErrMaxPoolZero = errors.Register(125, "Max pool cannot be zero")

	// ErrMaxStakeZero is returned when setting a tier allocation to
	// zero.
	ErrMaxStakeZero = errors.Register(126, "Max stake must be greater than 0")

	// ErrInvalidAddress is returned when rotating a custodian to the
	// zero address.
	ErrInvalidAddress = errors.Register(127, "Invalid address.")

	// ErrInvalidStakingToken is returned when rotating the staking
	// token to the zero address.
	ErrInvalidStakingToken = errors.Register(128, "Invalid staking token address")

	// ErrInvalidLockingToken is returned when rotating the locking
	// token to the zero address.
	ErrInvalidLockingToken = errors.Register(129, "Invalid locking token address")

	// ErrNotOwner is returned when an owner-only call comes from any
	// other account.
	ErrNotOwner = errors.Register(130, "caller is not the owner")

	// ErrNotAdmin is returned when an admin-only call comes from an
	// account outside the admin roster.
	ErrNotAdmin = errors.Register(131, "caller is not an admin")

	// ErrPaused is returned by every mutating entry point while the
	// ledger is paused.
	ErrPaused = errors.Register(132, "ledger is paused")

	// ErrWithdrawNotRequested is returned when claiming principal of a
	// position that never went through the request step.
	ErrWithdrawNotRequested = errors.Register(133, "Withdrawal not requested")
)
