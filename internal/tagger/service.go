// Package tagger composes the subgraph pager and the tag transformer into
// the public fetch operation.
package tagger

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"honeytags/internal/model"
	"honeytags/internal/pager"
	"honeytags/internal/subgraph"
	"honeytags/internal/tags"
)

// SupportedChainID is the only supported network: Gnosis Chain, where
// Honeyswap is deployed.
const SupportedChainID = "100"

// ErrUnsupportedChain is returned before any network access when the chain
// id is not the supported one.
var ErrUnsupportedChain = errors.New("unsupported chain")

// Service fetches every Honeyswap pair and projects it into tags.
type Service struct {
	endpoint string
	logger   *zap.Logger
}

// NewService builds a Service. An empty endpoint uses the default subgraph
// endpoint template.
func NewService(endpoint string, logger *zap.Logger) *Service {
	if endpoint == "" {
		endpoint = subgraph.DefaultEndpoint
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{endpoint: endpoint, logger: logger}
}

// ReturnTags pages through all pairs recorded for chainID and returns tags
// for every pair that passes validation, in fetch order. Each page is
// transformed as it arrives. Any page failure aborts the whole run; there is
// no partial result.
func (s *Service) ReturnTags(ctx context.Context, chainID, apiKey string) ([]model.Tag, error) {
	if chainID != SupportedChainID {
		return nil, fmt.Errorf("%w: %q (only %q is supported)", ErrUnsupportedChain, chainID, SupportedChainID)
	}

	client := subgraph.NewClient(subgraph.ResolveEndpoint(s.endpoint, apiKey), s.logger)
	loop := pager.New(client, subgraph.PageSize, s.logger)

	var collected []model.Tag
	fetched := 0

	err := loop.Run(ctx, func(pairs []model.Pair) error {
		fetched += len(pairs)
		collected = append(collected, tags.FromPairs(chainID, pairs)...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch honeyswap pairs: %w", err)
	}

	s.logger.Info("pairs fetched",
		zap.Int("pairs", fetched),
		zap.Int("tags", len(collected)),
		zap.Int("rejected", fetched-len(collected)),
	)

	return collected, nil
}
