package client

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pump-fun-sdk-go/pkg/pumpfun"
)

// CurveReader fetches bonding curve accounts and runs them through the decoder
type CurveReader struct {
	fetcher  AccountFetcher
	parallel int
	logger   *logrus.Logger
}

// NewCurveReader creates a reader; parallel bounds AnalyzeMany's concurrent fetches
func NewCurveReader(fetcher AccountFetcher, parallel int, logger *logrus.Logger) *CurveReader {
	if parallel < 1 {
		parallel = 1
	}
	return &CurveReader{
		fetcher:  fetcher,
		parallel: parallel,
		logger:   logger,
	}
}

// State fetches and decodes one bonding curve
func (r *CurveReader) State(ctx context.Context, address solana.PublicKey) (*pumpfun.BondingCurveState, error) {
	data, err := r.fetcher.FetchAccountData(ctx, address)
	if err != nil {
		return nil, err
	}

	state, err := pumpfun.DecodeBondingCurve(data)
	if err != nil {
		return nil, fmt.Errorf("invalid bonding curve data: %w", err)
	}
	return state, nil
}

// Analyze fetches one bonding curve and computes its analysis
func (r *CurveReader) Analyze(ctx context.Context, address solana.PublicKey) (*pumpfun.CurveAnalysis, error) {
	start := time.Now()

	data, err := r.fetcher.FetchAccountData(ctx, address)
	if err != nil {
		return nil, err
	}

	analysis, err := pumpfun.AnalyzeCurve(data)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"account": address.String(),
			"bytes":   len(data),
		}).WithError(err).Warn("Failed to analyze bonding curve")
		return nil, fmt.Errorf("invalid bonding curve data: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"account":     address.String(),
		"price_sol":   analysis.PriceSOL,
		"complete":    analysis.Complete,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Analyzed bonding curve")

	return analysis, nil
}

// AnalyzeMany analyzes curves concurrently; results keep the order of addresses.
// The first failure cancels the remaining fetches.
func (r *CurveReader) AnalyzeMany(ctx context.Context, addresses []solana.PublicKey) ([]*pumpfun.CurveAnalysis, error) {
	results := make([]*pumpfun.CurveAnalysis, len(addresses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)

	for i, address := range addresses {
		i, address := i, address
		g.Go(func() error {
			analysis, err := r.Analyze(gctx, address)
			if err != nil {
				return fmt.Errorf("curve %s: %w", address, err)
			}
			results[i] = analysis
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
