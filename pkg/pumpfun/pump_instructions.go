package pumpfun

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"pump-fun-sdk-go/pkg/anchor"
	"pump-fun-sdk-go/pkg/utils"
)

// Instruction is an unsigned pump.fun instruction
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// TradeAccounts are the caller supplied accounts of a buy or sell
type TradeAccounts struct {
	Payer                  solana.PublicKey
	Mint                   solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
}

// BuildBuy creates a buy instruction spending amountSOL
func BuildBuy(payer, mint, bondingCurve, associatedBondingCurve solana.PublicKey, amountSOL float64) (*Instruction, error) {
	if !(amountSOL > 0) {
		return nil, newError(KindInvalidAmount, "amount", "Amount must be greater than 0, got %v", amountSOL)
	}
	lamports, err := utils.ConvertSOLToLamports(amountSOL)
	if err != nil {
		return nil, wrapError(KindInvalidAmount, "amount", err, "%v SOL", amountSOL)
	}

	return buildTrade("buy", TradeAccounts{
		Payer:                  payer,
		Mint:                   mint,
		BondingCurve:           bondingCurve,
		AssociatedBondingCurve: associatedBondingCurve,
	}, lamports)
}

// BuildSell creates a sell instruction for amountTokens display tokens
func BuildSell(payer, mint, bondingCurve, associatedBondingCurve solana.PublicKey, amountTokens float64) (*Instruction, error) {
	if !(amountTokens > 0) {
		return nil, newError(KindInvalidAmount, "amount", "Amount must be greater than 0, got %v", amountTokens)
	}
	units, err := utils.ConvertTokensToBaseUnits(amountTokens)
	if err != nil {
		return nil, wrapError(KindInvalidAmount, "amount", err, "%v tokens", amountTokens)
	}

	return buildTrade("sell", TradeAccounts{
		Payer:                  payer,
		Mint:                   mint,
		BondingCurve:           bondingCurve,
		AssociatedBondingCurve: associatedBondingCurve,
	}, units)
}

func buildTrade(name string, accounts TradeAccounts, amount uint64) (*Instruction, error) {
	if amount == 0 {
		return nil, newError(KindInvalidAmount, "amount", "Amount must be greater than 0 base units")
	}

	metas, err := tradeAccountMetas(name, accounts)
	if err != nil {
		return nil, err
	}

	return &Instruction{
		ProgramID: ProgramID,
		Accounts:  metas,
		Data:      anchor.NewInstructionBuilder(name).AddU64(amount).Build(),
	}, nil
}

// tradeAccountMetas lays out accounts in the order the program IDL declares them
func tradeAccountMetas(name string, accounts TradeAccounts) ([]AccountMeta, error) {
	inst, err := anchor.PumpFunIDL.GetInstruction(name)
	if err != nil {
		return nil, err
	}

	associatedUser, _, err := solana.FindAssociatedTokenAddress(accounts.Payer, accounts.Mint)
	if err != nil {
		return nil, wrapError(KindInvalidPubkey, "associatedUser", err, "failed to derive payer token account")
	}

	byName := map[string]solana.PublicKey{
		"global":                 Global,
		"feeRecipient":           FeeRecipient,
		"mint":                   accounts.Mint,
		"bondingCurve":           accounts.BondingCurve,
		"associatedBondingCurve": accounts.AssociatedBondingCurve,
		"associatedUser":         associatedUser,
		"user":                   accounts.Payer,
		"systemProgram":          solana.SystemProgramID,
		"tokenProgram":           solana.TokenProgramID,
		"associatedTokenProgram": solana.SPLAssociatedTokenAccountProgramID,
		"rent":                   solana.SysVarRentPubkey,
		"eventAuthority":         EventAuthority,
		"program":                ProgramID,
	}

	metas := make([]AccountMeta, 0, len(inst.Accounts))
	for _, acc := range inst.Accounts {
		pubkey, ok := byName[acc.Name]
		if !ok {
			return nil, fmt.Errorf("no address for account '%s' of instruction '%s'", acc.Name, name)
		}
		metas = append(metas, NewAccountMeta(pubkey, acc.Signs(), acc.Mutable()))
	}
	return metas, nil
}

// ToSolana converts the instruction to the wire-level form
func (ix *Instruction) ToSolana() *solana.GenericInstruction {
	metas := make(solana.AccountMetaSlice, 0, len(ix.Accounts))
	for _, m := range ix.Accounts {
		metas = append(metas, m.ToSolana())
	}
	return solana.NewInstruction(ix.ProgramID, metas, ix.Data)
}

// NewUnsignedTransaction wraps instructions into a transaction paid by payer.
// The caller signs it.
func NewUnsignedTransaction(blockhash solana.Hash, payer solana.PublicKey, ixs ...*Instruction) (*solana.Transaction, error) {
	if len(ixs) == 0 {
		return nil, fmt.Errorf("no instructions to wrap")
	}

	list := make([]solana.Instruction, 0, len(ixs))
	for _, ix := range ixs {
		list = append(list, ix.ToSolana())
	}

	tx, err := solana.NewTransaction(list, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}
