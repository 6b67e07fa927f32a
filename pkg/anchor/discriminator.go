package anchor

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DiscriminatorSize is the width of an Anchor discriminator in bytes
const DiscriminatorSize = 8

// Discriminator represents an 8-byte instruction or account discriminator
type Discriminator [DiscriminatorSize]byte

// String returns hex representation of discriminator
func (d Discriminator) String() string {
	return hex.EncodeToString(d[:])
}

// Bytes returns discriminator as byte slice
func (d Discriminator) Bytes() []byte {
	return d[:]
}

// Equals compares two discriminators
func (d Discriminator) Equals(other Discriminator) bool {
	return d == other
}

// Matches reports whether data starts with the discriminator
func (d Discriminator) Matches(data []byte) bool {
	return len(data) >= DiscriminatorSize && bytes.Equal(data[:DiscriminatorSize], d[:])
}

// ComputeDiscriminator computes 8-byte discriminator for instruction/account
func ComputeDiscriminator(namespace, name string) Discriminator {
	// sha256("namespace:name")[0:8]
	hash := sha256.Sum256([]byte(namespace + ":" + name))

	var discriminator Discriminator
	copy(discriminator[:], hash[:DiscriminatorSize])
	return discriminator
}

// ComputeInstructionDiscriminator computes discriminator for instruction
func ComputeInstructionDiscriminator(name string) Discriminator {
	return ComputeDiscriminator("global", name)
}

// ComputeAccountDiscriminator computes discriminator for account
func ComputeAccountDiscriminator(name string) Discriminator {
	return ComputeDiscriminator("account", name)
}

// Predefined pump.fun discriminators
var (
	BuyDiscriminator  = ComputeInstructionDiscriminator("buy")
	SellDiscriminator = ComputeInstructionDiscriminator("sell")

	BondingCurveDiscriminator = ComputeAccountDiscriminator("BondingCurve")
)

// DiscriminatorFromBytes creates discriminator from byte slice
func DiscriminatorFromBytes(data []byte) (Discriminator, error) {
	if len(data) < DiscriminatorSize {
		return Discriminator{}, fmt.Errorf("data too short for discriminator: need %d bytes, got %d", DiscriminatorSize, len(data))
	}

	var discriminator Discriminator
	copy(discriminator[:], data[:DiscriminatorSize])
	return discriminator, nil
}

// DiscriminatorFromHex creates discriminator from hex string
func DiscriminatorFromHex(s string) (Discriminator, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Discriminator{}, fmt.Errorf("invalid discriminator hex: %w", err)
	}
	if len(raw) != DiscriminatorSize {
		return Discriminator{}, fmt.Errorf("invalid discriminator length: expected %d bytes, got %d", DiscriminatorSize, len(raw))
	}
	return DiscriminatorFromBytes(raw)
}
