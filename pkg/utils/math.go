package utils

import (
	"errors"
	"math"
	"math/big"
)

// Unit scales of the pump.fun protocol
const (
	LamportsPerSol = 1_000_000_000
	TokenDecimals  = 6
	TokenUnit      = 1_000_000
)

// ErrNotScalable is returned when an amount cannot be represented in base units
var ErrNotScalable = errors.New("amount cannot be represented in base units")

// ConvertSOLToLamports converts SOL to lamports, rounding to the nearest lamport
func ConvertSOLToLamports(sol float64) (uint64, error) {
	return scaleToUnits(sol, LamportsPerSol)
}

// ConvertLamportsToSOL converts lamports to SOL
func ConvertLamportsToSOL(lamports uint64) float64 {
	return float64(lamports) / LamportsPerSol
}

// ConvertTokensToBaseUnits converts display tokens to 6-decimal base units
func ConvertTokensToBaseUnits(tokens float64) (uint64, error) {
	return scaleToUnits(tokens, TokenUnit)
}

// ConvertBaseUnitsToTokens converts base units to display tokens
func ConvertBaseUnitsToTokens(units uint64) float64 {
	return float64(units) / TokenUnit
}

func scaleToUnits(amount float64, unit uint64) (uint64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, ErrNotScalable
	}

	scaled := math.Round(amount * float64(unit))
	if scaled >= maxUint64Float {
		return 0, ErrNotScalable
	}
	return uint64(scaled), nil
}

// float64(math.MaxUint64) rounds up to 2^64, so any value at or above it overflows
const maxUint64Float = float64(math.MaxUint64)

// IsPositiveFinite reports whether v is strictly positive and finite
func IsPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// ConstantProductOut returns the output of swapping amountIn into a constant-product pool
// with reserves (reserveIn, reserveOut), in reserveOut units:
//
//	out = reserveOut - reserveIn*reserveOut/(reserveIn+amountIn) = reserveOut*amountIn/(reserveIn+amountIn)
//
// The second form never subtracts, so out > 0 whenever every input is positive.
func ConstantProductOut(reserveIn, reserveOut uint64, amountIn *big.Float) *big.Float {
	in := new(big.Float).SetUint64(reserveIn)
	out := new(big.Float).SetUint64(reserveOut)

	denominator := new(big.Float).Add(in, amountIn)
	numerator := new(big.Float).Mul(out, amountIn)
	return numerator.Quo(numerator, denominator)
}
