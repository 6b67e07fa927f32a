package utils

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Supported payload encodings of RPC responses
const (
	EncodingBase64 = "base64"
	EncodingBase58 = "base58"
)

// EncodeBase58 encodes bytes to base58 string
func EncodeBase58(data []byte) string {
	return base58.Encode(data)
}

// DecodeBase58 decodes base58 string to bytes
func DecodeBase58(encoded string) ([]byte, error) {
	return base58.Decode(encoded)
}

// EncodeBase64 encodes bytes to base64 string
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes base64 string to bytes
func DecodeBase64(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}

// DecodeWithEncoding decodes payload using the named RPC encoding, base64 when empty
func DecodeWithEncoding(payload, encoding string) ([]byte, error) {
	payload = strings.TrimSpace(payload)

	switch strings.ToLower(encoding) {
	case "", EncodingBase64:
		return DecodeBase64(payload)
	case EncodingBase58:
		return DecodeBase58(payload)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// IsValidSolanaAddress checks if string is a valid Solana address
func IsValidSolanaAddress(address string) bool {
	decoded, err := base58.Decode(address)
	return err == nil && len(decoded) == 32
}
