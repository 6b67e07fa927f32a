package config

// Network endpoints
const (
	SolanaMainnetRPC = "https://api.mainnet-beta.solana.com"
	SolanaMainnetWS  = "wss://api.mainnet-beta.solana.com"
	SolanaDevnetRPC  = "https://api.devnet.solana.com"
	SolanaDevnetWS   = "wss://api.devnet.solana.com"
)

// Defaults
const (
	DefaultNetwork        = "mainnet"
	DefaultCommitment     = "confirmed"
	DefaultTimeoutSec     = 30
	DefaultReadParallel   = 8
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultLogFilePath    = "logs/pumpfun.log"
	DefaultConfigName     = "pumpfun"
	EnvPrefix             = "PUMPFUN"
	MaxReadParallel       = 64
	MaxRequestTimeoutSecs = 300
)

// Commitment levels accepted by the RPC
var validCommitments = map[string]bool{
	"processed": true,
	"confirmed": true,
	"finalized": true,
}

// GetRPCEndpoint returns RPC endpoint based on network
func GetRPCEndpoint(network string) string {
	switch network {
	case "devnet":
		return SolanaDevnetRPC
	default:
		return SolanaMainnetRPC
	}
}

// GetWSEndpoint returns WebSocket endpoint based on network
func GetWSEndpoint(network string) string {
	switch network {
	case "devnet":
		return SolanaDevnetWS
	default:
		return SolanaMainnetWS
	}
}
