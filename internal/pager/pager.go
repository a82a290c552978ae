// Package pager drives cursor-based pagination over the subgraph pairs
// collection.
package pager

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"honeytags/internal/model"
)

// State identifies where the pagination loop currently is. It is meaningful
// to observers between page callbacks.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateAccumulating
	StateDone
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateAccumulating:
		return "accumulating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PageSource fetches one page of pairs created strictly after cursor.
type PageSource interface {
	PairsPage(ctx context.Context, cursor int64) ([]model.Pair, error)
}

// Pager enumerates every pair in creation order using a strictly-greater-than
// timestamp cursor. Fetches are sequential: the cursor for page N+1 is the
// creation timestamp of page N's last record.
type Pager struct {
	source   PageSource
	pageSize int
	logger   *zap.Logger

	state  State
	cursor int64
	pages  int
}

// New builds a Pager. A pageSize of zero or less falls back to the source
// page size baked into the pairs query.
func New(source PageSource, pageSize int, logger *zap.Logger) *Pager {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pager{
		source:   source,
		pageSize: pageSize,
		logger:   logger,
		state:    StateIdle,
	}
}

const defaultPageSize = 1000

// State reports the loop state.
func (p *Pager) State() State { return p.state }

// Cursor reports the last consumed creation timestamp.
func (p *Pager) Cursor() int64 { return p.cursor }

// Run fetches every page and hands each one to onPage in fetch order. A full
// page triggers one more fetch; a shorter page terminates the loop. Any fetch
// or callback error aborts the run immediately with no partial result.
func (p *Pager) Run(ctx context.Context, onPage func([]model.Pair) error) error {
	p.state = StateFetching
	p.cursor = 0
	p.pages = 0

	for {
		select {
		case <-ctx.Done():
			p.state = StateFailed
			return ctx.Err()
		default:
		}

		pairs, err := p.source.PairsPage(ctx, p.cursor)
		if err != nil {
			p.state = StateFailed
			return fmt.Errorf("fetch page after cursor %d: %w", p.cursor, err)
		}

		p.state = StateAccumulating
		p.pages++
		if len(pairs) > 0 {
			p.cursor = pairs[len(pairs)-1].CreatedAt
		}

		p.logger.Debug("page fetched",
			zap.Int("page", p.pages),
			zap.Int("pairs", len(pairs)),
			zap.Int64("cursor", p.cursor),
		)

		if err := onPage(pairs); err != nil {
			p.state = StateFailed
			return err
		}

		if len(pairs) < p.pageSize {
			p.state = StateDone
			return nil
		}

		p.state = StateFetching
	}
}
