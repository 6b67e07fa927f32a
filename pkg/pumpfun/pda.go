package pumpfun

import (
	"github.com/gagliardetto/solana-go"
)

// BondingCurveSeed is the seed prefix of the bonding curve PDA
const BondingCurveSeed = "bonding-curve"

// DeriveBondingCurve returns the bonding curve account of mint
func DeriveBondingCurve(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(BondingCurveSeed),
		mint.Bytes(),
	}

	address, bump, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, 0, wrapError(KindInvalidPubkey, "bonding_curve", err, "cannot derive bonding curve of %s", mint)
	}
	return address, bump, nil
}

// DeriveAssociatedBondingCurve returns the token account holding the curve's tokens
func DeriveAssociatedBondingCurve(bondingCurve, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	address, bump, err := solana.FindAssociatedTokenAddress(bondingCurve, mint)
	if err != nil {
		return solana.PublicKey{}, 0, wrapError(KindInvalidPubkey, "associated_bonding_curve", err, "cannot derive token account of %s", bondingCurve)
	}
	return address, bump, nil
}

// DeriveTradeAccounts fills the curve accounts of a trade from the mint alone
func DeriveTradeAccounts(payer, mint solana.PublicKey) (TradeAccounts, error) {
	bondingCurve, _, err := DeriveBondingCurve(mint)
	if err != nil {
		return TradeAccounts{}, err
	}
	associated, _, err := DeriveAssociatedBondingCurve(bondingCurve, mint)
	if err != nil {
		return TradeAccounts{}, err
	}

	return TradeAccounts{
		Payer:                  payer,
		Mint:                   mint,
		BondingCurve:           bondingCurve,
		AssociatedBondingCurve: associated,
	}, nil
}
