package pumpfun

import (
	"github.com/gagliardetto/solana-go"
)

// Pump.fun program accounts
var (
	ProgramID      = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	Global         = solana.MustPublicKeyFromBase58("4wTV1YmiEkRvAtNtsSGPtUrqRYQMe5SKy2uB4Jjaxnjf")
	FeeRecipient   = solana.MustPublicKeyFromBase58("CebN5WGQ4jvEPvsVU4EoHEpgzq1VV7AbicfhtW4xC9iM")
	EventAuthority = solana.MustPublicKeyFromBase58("Ce6TQqeHC9p8KetsN6JsjHK7UTZk7nasjjnr7XxXp9F1")
)

// AccountMeta is one account reference of an instruction.
// The pubkey is validated when the value is constructed.
type AccountMeta struct {
	pubkey     solana.PublicKey
	isSigner   bool
	isWritable bool
}

// NewAccountMeta creates an account meta from a public key
func NewAccountMeta(pubkey solana.PublicKey, isSigner, isWritable bool) AccountMeta {
	return AccountMeta{
		pubkey:     pubkey,
		isSigner:   isSigner,
		isWritable: isWritable,
	}
}

// AccountMetaFromBase58 creates an account meta from a base58 address
func AccountMetaFromBase58(address string, isSigner, isWritable bool) (AccountMeta, error) {
	pubkey, err := ParsePubkey("pubkey", address)
	if err != nil {
		return AccountMeta{}, err
	}
	return NewAccountMeta(pubkey, isSigner, isWritable), nil
}

// AccountMetaFromSolana converts a wire-level account meta
func AccountMetaFromSolana(meta *solana.AccountMeta) (AccountMeta, error) {
	if meta == nil {
		return AccountMeta{}, newError(KindInvalidPubkey, "pubkey", "Invalid pubkey: account meta is nil")
	}
	return NewAccountMeta(meta.PublicKey, meta.IsSigner, meta.IsWritable), nil
}

// ParsePubkey parses a base58 address, field names the input in the error
func ParsePubkey(field, address string) (solana.PublicKey, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, wrapError(KindInvalidPubkey, field, err, "Invalid pubkey %q", address)
	}
	return pubkey, nil
}

// PublicKey returns the referenced account
func (m AccountMeta) PublicKey() solana.PublicKey { return m.pubkey }

// IsSigner reports whether the account signs the transaction
func (m AccountMeta) IsSigner() bool { return m.isSigner }

// IsWritable reports whether the account is writable
func (m AccountMeta) IsWritable() bool { return m.isWritable }

// ToSolana returns the wire-level account meta
func (m AccountMeta) ToSolana() *solana.AccountMeta {
	return &solana.AccountMeta{
		PublicKey:  m.pubkey,
		IsSigner:   m.isSigner,
		IsWritable: m.isWritable,
	}
}
