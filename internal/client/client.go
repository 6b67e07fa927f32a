package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"

	"pump-fun-sdk-go/internal/config"
)

// ErrAccountNotFound is returned when the RPC has no data for an account
var ErrAccountNotFound = errors.New("no data found for account")

// AccountFetcher returns the raw data of an account
type AccountFetcher interface {
	FetchAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error)
}

// Client represents a Solana RPC client wrapper
type Client struct {
	client     *rpc.Client
	commitment rpc.CommitmentType
	timeout    time.Duration
	logger     *logrus.Logger
}

// NewClient creates a new Solana RPC client from configuration
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	timeout := cfg.Timeout()
	if timeout == 0 {
		timeout = config.DefaultTimeoutSec * time.Second
	}

	return &Client{
		client:     rpc.New(cfg.RPCUrl),
		commitment: rpc.CommitmentType(cfg.Commitment),
		timeout:    timeout,
		logger:     logger,
	}
}

// FetchAccountData gets the raw bytes of an account
func (c *Client) FetchAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	result, err := c.client.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if errors.Is(err, rpc.ErrNotFound) || (err == nil && (result == nil || result.Value == nil)) {
		return nil, fmt.Errorf("%w %s", ErrAccountNotFound, address)
	}
	if err != nil {
		return nil, fmt.Errorf("getAccountInfo failed: %w", err)
	}

	data := result.Value.Data.GetBinary()
	if len(data) == 0 {
		return nil, fmt.Errorf("%w %s", ErrAccountNotFound, address)
	}

	c.logger.WithFields(logrus.Fields{
		"account":     address.String(),
		"bytes":       len(data),
		"slot":        result.Context.Slot,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Fetched account data")

	return data, nil
}

// GetLatestBlockhash gets the latest blockhash
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	if result == nil || result.Value == nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: empty result")
	}
	return result.Value.Blockhash, nil
}

// Close releases the underlying HTTP client
func (c *Client) Close() error {
	return c.client.Close()
}
