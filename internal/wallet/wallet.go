package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/gagliardetto/solana-go"
	bip39 "github.com/tyler-smith/go-bip39"

	"pump-fun-sdk-go/internal/config"
)

// ErrNoWallet is returned when neither a private key nor a mnemonic is configured
var ErrNoWallet = errors.New("no wallet configured: set wallet.private_key or wallet.mnemonic")

// Wallet holds the payer identity. It never signs, signing stays with the caller.
type Wallet struct {
	account types.Account
}

// Load builds the wallet from configuration, preferring the private key over the mnemonic
func Load(cfg config.WalletConfig) (*Wallet, error) {
	switch {
	case cfg.PrivateKey != "":
		return FromBase58(cfg.PrivateKey)
	case cfg.Mnemonic != "":
		return FromMnemonic(cfg.Mnemonic, cfg.Passphrase)
	default:
		return nil, ErrNoWallet
	}
}

// FromBase58 creates a wallet from a base58 encoded 64-byte private key
func FromBase58(privateKey string) (*Wallet, error) {
	account, err := types.AccountFromBase58(strings.TrimSpace(privateKey))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &Wallet{account: account}, nil
}

// FromMnemonic derives the wallet the way solana-keygen does without a derivation path:
// the first 32 bytes of the BIP39 seed are the ed25519 seed
func FromMnemonic(mnemonic, passphrase string) (*Wallet, error) {
	seed, err := bip39.NewSeedWithErrorChecking(strings.TrimSpace(mnemonic), passphrase)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}

	account, err := types.AccountFromSeed(seed[:32])
	if err != nil {
		return nil, fmt.Errorf("failed to derive account from seed: %w", err)
	}
	return &Wallet{account: account}, nil
}

// PublicKey returns the wallet's public key
func (w *Wallet) PublicKey() solana.PublicKey {
	return solana.PublicKey(w.account.PublicKey)
}

// String returns the wallet's public key as base58 string
func (w *Wallet) String() string {
	return w.account.PublicKey.ToBase58()
}

// AssociatedTokenAddress returns the wallet's token account for mint (no RPC call)
func (w *Wallet) AssociatedTokenAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(w.PublicKey(), mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to find ATA address: %w", err)
	}
	return ata, nil
}
