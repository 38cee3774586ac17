package stablestake

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dp-one/dpledger/ledgertest"
	"github.com/dp-one/dpledger/x/sigs"
)

func validSig() []byte {
	return make([]byte, sigs.SignatureLength)
}

func TestStakeMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     StakeMsg
		wantErr bool
	}{
		"valid": {
			msg: StakeMsg{Class: ClassPersonal, Period: 6, Amount: big.NewInt(1), Expiry: 1, Signature: validSig()},
		},
		"unknown class": {
			msg:     StakeMsg{Class: 7, Period: 6, Amount: big.NewInt(1), Expiry: 1, Signature: validSig()},
			wantErr: true,
		},
		"zero period": {
			msg:     StakeMsg{Class: ClassPersonal, Amount: big.NewInt(1), Expiry: 1, Signature: validSig()},
			wantErr: true,
		},
		"nil amount": {
			msg:     StakeMsg{Class: ClassPersonal, Period: 6, Expiry: 1, Signature: validSig()},
			wantErr: true,
		},
		"zero amount": {
			msg:     StakeMsg{Class: ClassPersonal, Period: 6, Amount: new(big.Int), Expiry: 1, Signature: validSig()},
			wantErr: true,
		},
		"negative expiry": {
			msg:     StakeMsg{Class: ClassPersonal, Period: 6, Amount: big.NewInt(1), Expiry: -1, Signature: validSig()},
			wantErr: true,
		},
		"missing signature": {
			msg:     StakeMsg{Class: ClassPersonal, Period: 6, Amount: big.NewInt(1), Expiry: 1},
			wantErr: true,
		},
		"short signature": {
			msg:     StakeMsg{Class: ClassPersonal, Period: 6, Amount: big.NewInt(1), Expiry: 1, Signature: make([]byte, 64)},
			wantErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrincipalMsgValidate(t *testing.T) {
	valid := WithdrawPrincipalMsg{StakeID: 1, Expiry: 1, Signature: validSig()}
	assert.NoError(t, valid.Validate())

	bad := WithdrawPrincipalMsg{StakeID: 0, Expiry: 1, Signature: validSig()}
	assert.Error(t, bad.Validate())

	req := RequestWithdrawPrincipalMsg{StakeID: 1, Expiry: 1, Signature: validSig()}
	assert.NoError(t, req.Validate())
	req.Signature = nil
	assert.Error(t, req.Validate())
}

func TestWithdrawInterestMsgValidate(t *testing.T) {
	valid := WithdrawInterestMsg{StakeID: 1, Months: []uint64{1}, Interests: []*big.Int{big.NewInt(1)}, Expiry: 1, Signature: validSig()}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.StakeID = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Signature = make([]byte, 10)
	assert.Error(t, bad.Validate())
}

func TestForceStopMsgValidate(t *testing.T) {
	valid := ForceStopMsg{User: ledgertest.RandomAddress(), StakeID: 1}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&ForceStopMsg{StakeID: 1}).Validate())
	assert.Error(t, (&ForceStopMsg{User: ledgertest.RandomAddress()}).Validate())
}

func TestMsgPaths(t *testing.T) {
	assert.Equal(t, "stablestake/stake", StakeMsg{}.Path())
	assert.Equal(t, "stablestake/request_withdraw_principal", RequestWithdrawPrincipalMsg{}.Path())
	assert.Equal(t, "stablestake/withdraw_principal", WithdrawPrincipalMsg{}.Path())
	assert.Equal(t, "stablestake/withdraw_interest", WithdrawInterestMsg{}.Path())
	assert.Equal(t, "stablestake/force_stop", ForceStopMsg{}.Path())
}
