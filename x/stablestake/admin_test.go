package stablestake

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dp-one/dpledger/ledgertest"
)

func TestAdminRoster(t *testing.T) {
	f := newFixture(t)
	admin := ledgertest.RandomAddress()

	// Only the owner manages the roster.
	_, err := f.gate.AddOrRemoveAdmin(f.db, admin, admin, true)
	assert.True(t, ErrNotOwner.Is(err), "%+v", err)

	res, err := f.gate.AddOrRemoveAdmin(f.db, f.owner, admin, true)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "AdminUpdated", res.Events[0].EventName())

	// The new admin can run operational updates.
	_, err = f.gate.UpdateLockMode(f.db, admin, true)
	require.NoError(t, err)

	_, err = f.gate.AddOrRemoveAdmin(f.db, f.owner, admin, false)
	require.NoError(t, err)
	_, err = f.gate.UpdateLockMode(f.db, admin, false)
	assert.True(t, ErrNotAdmin.Is(err), "%+v", err)

	// The owner always passes the admin check.
	_, err = f.gate.UpdateLockMode(f.db, f.owner, false)
	require.NoError(t, err)
}

func TestAdminGuardRails(t *testing.T) {
	f := newFixture(t)

	_, err := f.gate.UpdateTotalMaxStakingPool(f.db, f.owner, big.NewInt(0))
	assert.True(t, ErrMaxPoolZero.Is(err), "%+v", err)

	_, err = f.gate.UpdateMaxStakeForTier(f.db, f.owner, TierBronze, big.NewInt(0))
	assert.True(t, ErrMaxStakeZero.Is(err), "%+v", err)

	_, err = f.gate.UpdateAdditionalInterestForTier(f.db, f.owner, TierBronze, 5_000)
	assert.True(t, ErrInterestOutOfRange.Is(err), "%+v", err)
	_, err = f.gate.UpdateAdditionalInterestForTier(f.db, f.owner, TierBronze, 1_000_001)
	assert.True(t, ErrInterestOutOfRange.Is(err), "%+v", err)

	var zero common.Address
	_, err = f.gate.UpdateStakingPoolAndReward(f.db, f.owner, zero)
	assert.True(t, ErrInvalidAddress.Is(err), "%+v", err)
	_, err = f.gate.UpdateLockingPool(f.db, f.owner, zero)
	assert.True(t, ErrInvalidAddress.Is(err), "%+v", err)
	_, err = f.gate.UpdateStakingToken(f.db, f.owner, zero)
	assert.True(t, ErrInvalidStakingToken.Is(err), "%+v", err)
	_, err = f.gate.UpdateLockingToken(f.db, f.owner, zero)
	assert.True(t, ErrInvalidLockingToken.Is(err), "%+v", err)

	// Non-admins cannot touch anything.
	outsider := ledgertest.RandomAddress()
	_, err = f.gate.UpdateTotalMaxStakingPool(f.db, outsider, big.NewInt(1))
	assert.True(t, ErrNotAdmin.Is(err), "%+v", err)
}

func TestAdminUpdatesApply(t *testing.T) {
	f := newFixture(t)

	_, err := f.gate.UpdateThreshold(f.db, f.owner, TierBronze, e18(200_000))
	require.NoError(t, err)
	_, err = f.gate.UpdateAdditionalInterestForTier(f.db, f.owner, TierBronze, 12_000)
	require.NoError(t, err)
	_, err = f.gate.UpdatePersonalMinStake(f.db, f.owner, big.NewInt(50*unit))
	require.NoError(t, err)
	_, err = f.gate.UpdateBondingPeriod(f.db, f.owner, 14)
	require.NoError(t, err)
	_, err = f.gate.UpdateWithdrawalPeriod(f.db, f.owner, 7)
	require.NoError(t, err)

	newPool := ledgertest.RandomAddress()
	res, err := f.gate.UpdateStakingPoolAndReward(f.db, f.owner, newPool)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "StakingPoolAndRewardUpdated", res.Events[0].EventName())

	newLockPool := ledgertest.RandomAddress()
	res, err = f.gate.UpdateLockingPool(f.db, f.owner, newLockPool)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "LockedTokenUpdated", res.Events[0].EventName())

	conf, err := f.gate.Config(f.db)
	require.NoError(t, err)
	assert.Equal(t, 0, conf.Tiers[TierBronze].Threshold.Cmp(e18(200_000)))
	assert.Equal(t, uint32(12_000), conf.Tiers[TierBronze].AdditionalPpm)
	assert.Equal(t, int64(50*unit), conf.PersonalMinStake.Int64())
	assert.Equal(t, uint32(14), conf.BondingPeriodDays)
	assert.Equal(t, uint32(7), conf.WithdrawalPeriodDays)
	assert.Equal(t, newPool, conf.StakingPool)
	assert.Equal(t, newLockPool, conf.LockingPool)
}

func TestPeriodCatalogue(t *testing.T) {
	f := newFixture(t)

	_, err := f.gate.AddStakingPeriod(f.db, f.owner, 6, 80_000)
	assert.True(t, ErrPeriodExists.Is(err), "%+v", err)

	_, err = f.gate.AddStakingPeriod(f.db, f.owner, 24, 5_000)
	assert.True(t, ErrRateTooLow.Is(err), "%+v", err)

	res, err := f.gate.AddStakingPeriod(f.db, f.owner, 24, 90_000)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "StakingPeriodEvent", res.Events[0].EventName())

	_, err = f.gate.UpdateStakingPeriod(f.db, f.owner, 36, 90_000)
	assert.True(t, ErrPeriodNotFound.Is(err), "%+v", err)
	_, err = f.gate.UpdateStakingPeriod(f.db, f.owner, 24, 95_000)
	require.NoError(t, err)

	_, err = f.gate.DisableStakingPeriod(f.db, f.owner, 36)
	assert.True(t, ErrPeriodNotFound.Is(err), "%+v", err)
	_, err = f.gate.DisableStakingPeriod(f.db, f.owner, 24)
	require.NoError(t, err)
	_, err = f.gate.EnableStakingPeriod(f.db, f.owner, 36)
	assert.True(t, ErrPeriodNotFound.Is(err), "%+v", err)
	_, err = f.gate.EnableStakingPeriod(f.db, f.owner, 24)
	require.NoError(t, err)

	listing, err := f.gate.PeriodList(f.db)
	require.NoError(t, err)
	assert.Equal(t, []uint32{6, 9, 12, 18, 24}, listing.Periods)
	assert.Equal(t, []uint32{70_000, 70_000, 70_000, 70_000, 95_000}, listing.Rates)
	assert.Equal(t, 5, listing.TotalActive)
}
