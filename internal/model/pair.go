package model

import (
	"encoding/json"
	"fmt"
)

// Token captures subgraph token metadata. The values come verbatim from a
// third-party indexer and must be treated as untrusted text.
type Token struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Pair is one Honeyswap liquidity pool contract as recorded by the subgraph.
// Pools are immutable once deployed, so a fetched Pair is a read-only snapshot.
type Pair struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"createdAtTimestamp"`
	TxCount   int64  `json:"txCount"`
	Token0    Token  `json:"token0"`
	Token1    Token  `json:"token1"`
}

// wirePair matches the subgraph JSON. The Graph encodes BigInt fields as
// strings while simpler sources send bare numbers; json.Number accepts both.
type wirePair struct {
	ID                 string      `json:"id"`
	CreatedAtTimestamp json.Number `json:"createdAtTimestamp"`
	TxCount            json.Number `json:"txCount"`
	Token0             Token       `json:"token0"`
	Token1             Token       `json:"token1"`
}

// UnmarshalJSON decodes a Pair from the subgraph wire shape.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var w wirePair
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	createdAt, err := w.CreatedAtTimestamp.Int64()
	if err != nil {
		return fmt.Errorf("parse createdAtTimestamp %q: %w", w.CreatedAtTimestamp, err)
	}

	// txCount is fetched for completeness but unused downstream; a missing
	// value decodes as zero rather than failing the page.
	txCount, _ := w.TxCount.Int64()

	*p = Pair{
		ID:        w.ID,
		CreatedAt: createdAt,
		TxCount:   txCount,
		Token0:    w.Token0,
		Token1:    w.Token1,
	}
	return nil
}
