package stablestake

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dp-one/dpledger"
	"github.com/dp-one/dpledger/errors"
	"github.com/dp-one/dpledger/x/sigs"
)

var (
	_ dpledger.Msg = (*StakeMsg)(nil)
	_ dpledger.Msg = (*RequestWithdrawPrincipalMsg)(nil)
	_ dpledger.Msg = (*WithdrawPrincipalMsg)(nil)
	_ dpledger.Msg = (*WithdrawInterestMsg)(nil)
	_ dpledger.Msg = (*ForceStopMsg)(nil)
)

// StakeMsg admits a new position. All parameters are covered by the
// authorizer signature.
type StakeMsg struct {
	Class       AdmissionClass
	Period      uint32
	Amount      *big.Int
	TokenLocked bool
	Expiry      dpledger.UnixTime
	Signature   []byte
}

func (StakeMsg) Path() string {
	return "stablestake/stake"
}

func (m *StakeMsg) Validate() error {
	var errs error
	if m.Class != ClassPersonal && m.Class != ClassInstitutional {
		errs = errors.AppendField(errs, "Class", errors.ErrInput)
	}
	if m.Period == 0 {
		errs = errors.AppendField(errs, "Period", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Amount", validatePositiveAmount(m.Amount))
	errs = errors.AppendField(errs, "Expiry", m.Expiry.Validate())
	errs = errors.AppendField(errs, "Signature", validateSignature(m.Signature))
	return errs
}

// RequestWithdrawPrincipalMsg opens the withdrawal window of a
// position.
type RequestWithdrawPrincipalMsg struct {
	StakeID   int64
	Expiry    dpledger.UnixTime
	Signature []byte
}

func (RequestWithdrawPrincipalMsg) Path() string {
	return "stablestake/request_withdraw_principal"
}

func (m *RequestWithdrawPrincipalMsg) Validate() error {
	return validatePrincipalMsg(m.StakeID, m.Expiry, m.Signature)
}

// WithdrawPrincipalMsg pays the principal (and the companion lock) back
// and closes the position.
type WithdrawPrincipalMsg struct {
	StakeID   int64
	Expiry    dpledger.UnixTime
	Signature []byte
}

func (WithdrawPrincipalMsg) Path() string {
	return "stablestake/withdraw_principal"
}

func (m *WithdrawPrincipalMsg) Validate() error {
	return validatePrincipalMsg(m.StakeID, m.Expiry, m.Signature)
}

func validatePrincipalMsg(stakeID int64, expiry dpledger.UnixTime, sig []byte) error {
	var errs error
	if stakeID < 1 {
		errs = errors.AppendField(errs, "StakeID", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Expiry", expiry.Validate())
	errs = errors.AppendField(errs, "Signature", validateSignature(sig))
	return errs
}

// WithdrawInterestMsg claims the interest of one or more months of a
// position. Months and Interests are pairwise: Interests[i] is paid for
// Months[i].
type WithdrawInterestMsg struct {
	StakeID   int64
	Months    []uint64
	Interests []*big.Int
	Expiry    dpledger.UnixTime
	Signature []byte
}

func (WithdrawInterestMsg) Path() string {
	return "stablestake/withdraw_interest"
}

func (m *WithdrawInterestMsg) Validate() error {
	var errs error
	if m.StakeID < 1 {
		errs = errors.AppendField(errs, "StakeID", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Expiry", m.Expiry.Validate())
	errs = errors.AppendField(errs, "Signature", validateSignature(m.Signature))
	return errs
}

// ForceStopMsg closes a position by administrative decision, bypassing
// the signature gate. No funds move; settlement is handled by the
// custodian off ledger.
type ForceStopMsg struct {
	User    common.Address
	StakeID int64
}

func (ForceStopMsg) Path() string {
	return "stablestake/force_stop"
}

func (m *ForceStopMsg) Validate() error {
	var errs error
	if m.User == (common.Address{}) {
		errs = errors.AppendField(errs, "User", errors.ErrEmpty)
	}
	if m.StakeID < 1 {
		errs = errors.AppendField(errs, "StakeID", errors.ErrInput)
	}
	return errs
}

func validateSignature(sig []byte) error {
	if len(sig) == 0 {
		return errors.ErrEmpty
	}
	if len(sig) != sigs.SignatureLength {
		return errors.ErrInput
	}
	return nil
}
