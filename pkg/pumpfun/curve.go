package pumpfun

import (
	"fmt"

	"pump-fun-sdk-go/pkg/anchor"
)

// BondingCurveLayoutSize is the number of bytes the layout needs after the discriminator:
// five u64 reserves followed by the complete flag
const BondingCurveLayoutSize = 5*8 + 1

// BondingCurveAccountSize is the minimum size of a bonding curve account
const BondingCurveAccountSize = anchor.DiscriminatorSize + BondingCurveLayoutSize

// BondingCurveState represents the bonding curve account data
type BondingCurveState struct {
	VirtualTokenReserves uint64 // Virtual token reserves, drive pricing
	VirtualSolReserves   uint64 // Virtual SOL reserves in lamports, drive pricing
	RealTokenReserves    uint64 // Real token reserves
	RealSolReserves      uint64 // Real SOL reserves in lamports
	TokenTotalSupply     uint64 // Total token supply
	Complete             bool   // Whether the curve migrated to a pool
}

// DecodeBondingCurve decodes raw bonding curve account data.
// Bytes after the complete flag are ignored.
func DecodeBondingCurve(data []byte) (*BondingCurveState, error) {
	if !anchor.BondingCurveDiscriminator.Matches(data) {
		return nil, newError(KindInvalidDiscriminator, "discriminator",
			"expected %s", anchor.BondingCurveDiscriminator)
	}

	if got := len(data) - anchor.DiscriminatorSize; got < BondingCurveLayoutSize {
		return nil, newError(KindMalformedLayout, "data",
			"need %d bytes after discriminator, got %d", BondingCurveLayoutSize, got)
	}

	r := anchor.NewReader(data)
	state := &BondingCurveState{}

	fields := []struct {
		name string
		dst  *uint64
	}{
		{"virtual_token_reserves", &state.VirtualTokenReserves},
		{"virtual_sol_reserves", &state.VirtualSolReserves},
		{"real_token_reserves", &state.RealTokenReserves},
		{"real_sol_reserves", &state.RealSolReserves},
		{"token_total_supply", &state.TokenTotalSupply},
	}
	for _, f := range fields {
		v, err := r.ReadU64()
		if err != nil {
			return nil, wrapError(KindMalformedLayout, f.name, err, "failed to read field")
		}
		*f.dst = v
	}

	complete, err := r.ReadBool()
	if err != nil {
		return nil, wrapError(KindMalformedLayout, "complete", err, "failed to read field")
	}
	state.Complete = complete

	return state, nil
}

// CheckTradable fails with CURVE_COMPLETE once the curve migrated
func (s *BondingCurveState) CheckTradable() error {
	if s.Complete {
		return newError(KindCurveComplete, "complete", "bonding curve has migrated, trade on the pool instead")
	}
	return nil
}

func (s *BondingCurveState) hasLiquidity() error {
	if s.VirtualTokenReserves == 0 {
		return newError(KindInvalidReserves, "virtual_token_reserves", "Invalid bonding curve reserves: must be nonzero")
	}
	if s.VirtualSolReserves == 0 {
		return newError(KindInvalidReserves, "virtual_sol_reserves", "Invalid bonding curve reserves: must be nonzero")
	}
	return nil
}

// String implements fmt.Stringer
func (s *BondingCurveState) String() string {
	return fmt.Sprintf(
		"BondingCurveState(virtualToken=%d, virtualSOL=%d, realToken=%d, realSOL=%d, supply=%d, complete=%t)",
		s.VirtualTokenReserves,
		s.VirtualSolReserves,
		s.RealTokenReserves,
		s.RealSolReserves,
		s.TokenTotalSupply,
		s.Complete,
	)
}
