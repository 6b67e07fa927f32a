package pumpfun

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"

	"pump-fun-sdk-go/pkg/utils"
)

// SpotPrice calculates the current price per token in SOL.
// SOL reserves are in lamports and token reserves in 6-decimal base units.
func SpotPrice(state *BondingCurveState) (float64, error) {
	if err := state.hasLiquidity(); err != nil {
		return 0, err
	}

	sol := float64(state.VirtualSolReserves) / utils.LamportsPerSol
	tokens := float64(state.VirtualTokenReserves) / utils.TokenUnit
	return sol / tokens, nil
}

// QuoteOutput calculates the output of a trade against the curve.
// For a buy input is SOL and the result is tokens, for a sell input is tokens and the result is SOL.
func QuoteOutput(state *BondingCurveState, input float64, isBuy bool) (float64, error) {
	if err := state.hasLiquidity(); err != nil {
		return 0, err
	}
	if !utils.IsPositiveFinite(input) {
		return 0, newError(KindInvalidAmount, "input_amount", "must be positive and finite, got %v", input)
	}

	var (
		reserveIn, reserveOut uint64
		inUnit, outUnit       float64
	)
	if isBuy {
		reserveIn, reserveOut = state.VirtualSolReserves, state.VirtualTokenReserves
		inUnit, outUnit = utils.LamportsPerSol, utils.TokenUnit
	} else {
		reserveIn, reserveOut = state.VirtualTokenReserves, state.VirtualSolReserves
		inUnit, outUnit = utils.TokenUnit, utils.LamportsPerSol
	}

	amountIn := new(big.Float).SetPrec(quotePrecision).SetFloat64(input)
	amountIn.Mul(amountIn, big.NewFloat(inUnit))

	out := utils.ConstantProductOut(reserveIn, reserveOut, amountIn)
	out.Quo(out, big.NewFloat(outUnit))

	quote, _ := out.Float64()
	if quote == 0 {
		// below float64 range, the exact result is still positive
		quote = math.SmallestNonzeroFloat64
	}
	return quote, nil
}

const quotePrecision = 256

// CurveAnalysis is the derived view of one bonding curve state
type CurveAnalysis struct {
	PriceSOL             float64 `json:"price_sol"`
	VirtualTokenReserves uint64  `json:"virtual_token_reserves"`
	VirtualSolReserves   uint64  `json:"virtual_sol_reserves"`
	RealTokenReserves    uint64  `json:"real_token_reserves"`
	RealSolReserves      uint64  `json:"real_sol_reserves"`
	TokenTotalSupply     uint64  `json:"token_total_supply"`
	Complete             bool    `json:"complete"`
}

// AnalyzeCurve decodes account data and computes the spot price
func AnalyzeCurve(data []byte) (*CurveAnalysis, error) {
	state, err := DecodeBondingCurve(data)
	if err != nil {
		return nil, err
	}
	return AnalyzeState(state)
}

// AnalyzeState computes the analysis of an already decoded state
func AnalyzeState(state *BondingCurveState) (*CurveAnalysis, error) {
	price, err := SpotPrice(state)
	if err != nil {
		return nil, err
	}

	return &CurveAnalysis{
		PriceSOL:             price,
		VirtualTokenReserves: state.VirtualTokenReserves,
		VirtualSolReserves:   state.VirtualSolReserves,
		RealTokenReserves:    state.RealTokenReserves,
		RealSolReserves:      state.RealSolReserves,
		TokenTotalSupply:     state.TokenTotalSupply,
		Complete:             state.Complete,
	}, nil
}

// WriteJSON writes the analysis as indented JSON
func (a *CurveAnalysis) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	return nil
}

// Print writes a human readable report
func (a *CurveAnalysis) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Bonding Curve Analysis:\n"+
			"  price_sol: %.12f\n"+
			"  virtual_token_reserves: %d\n"+
			"  virtual_sol_reserves: %d\n"+
			"  real_token_reserves: %d\n"+
			"  real_sol_reserves: %d\n"+
			"  token_total_supply: %d\n"+
			"  complete: %t\n",
		a.PriceSOL,
		a.VirtualTokenReserves,
		a.VirtualSolReserves,
		a.RealTokenReserves,
		a.RealSolReserves,
		a.TokenTotalSupply,
		a.Complete,
	)
	return err
}
