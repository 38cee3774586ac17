package stablestake

import "math/big"

// tierOf maps a locking token balance to the highest tier whose
// threshold it reaches. The scan runs from VIP down so raising a lower
// threshold above a higher one cannot skip bands. A zero threshold
// matches every balance, which lets an admin open a tier to everyone.
func tierOf(conf *Configuration, lockedBalance *big.Int) Tier {
	if lockedBalance == nil {
		return TierNone
	}
	for t := TierVIP; t > TierNone; t-- {
		th := conf.Tiers[t].Threshold
		if th != nil && lockedBalance.Cmp(th) >= 0 {
			return t
		}
	}
	return TierNone
}

// classTierOf is tierOf with the admission class cap applied: personal
// stakes top out at Gold, only institutional ones reach VIP.
func classTierOf(conf *Configuration, lockedBalance *big.Int, class AdmissionClass) Tier {
	t := tierOf(conf, lockedBalance)
	if class == ClassPersonal && t > TierGold {
		t = TierGold
	}
	return t
}

// monthlyInterest computes the fixed monthly payout of a position:
// amount * (base + additional) / 1e6 / 12, integer division at each
// step.
func monthlyInterest(amount *big.Int, basePpm, additionalPpm uint32) *big.Int {
	yearly := new(big.Int).Mul(amount, big.NewInt(int64(basePpm)+int64(additionalPpm)))
	yearly.Div(yearly, big.NewInt(ppmUnit))
	return yearly.Div(yearly, big.NewInt(12))
}

// tierMinimumLocked returns the companion lock amount charged for a
// tier: the tier's own threshold, with the base (NoTier) threshold as
// the floor.
func tierMinimumLocked(conf *Configuration, t Tier) *big.Int {
	th := conf.Tiers[t].Threshold
	if th == nil || th.Sign() == 0 {
		th = conf.Tiers[TierNone].Threshold
	}
	if th == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(th)
}
