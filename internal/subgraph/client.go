// Package subgraph provides the HTTP client for the Honeyswap pairs
// subgraph on The Graph gateway.
package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"honeytags/internal/model"
)

// DefaultEndpoint is the Honeyswap subgraph deployment on the gateway. The
// {api-key} placeholder is replaced with the caller's credential.
const DefaultEndpoint = "https://gateway.thegraph.com/api/{api-key}/subgraphs/id/8obLTNcEuGMieUt6jmrDaQUhWyj2pys26ULeP3gFiGNv"

const apiKeyPlaceholder = "{api-key}"

// PageSize is the number of pairs requested per page. A page this size means
// more data may exist; a shorter page means the source is exhausted.
const PageSize = 1000

// pairsQuery asks for pairs created strictly after the cursor, in ascending
// creation order. The strict inequality guarantees no record is fetched twice.
var pairsQuery = fmt.Sprintf(`query Pairs($cursor: Int!) {
  pairs(first: %d, orderBy: createdAtTimestamp, orderDirection: asc, where: {createdAtTimestamp_gt: $cursor}) {
    id
    createdAtTimestamp
    txCount
    token0 { id symbol name }
    token1 { id symbol name }
  }
}`, PageSize)

// ResolveEndpoint substitutes the API key into the endpoint template.
func ResolveEndpoint(template, apiKey string) string {
	return strings.Replace(template, apiKeyPlaceholder, apiKey, 1)
}

// Client posts pairs queries against a resolved subgraph endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for a fully resolved endpoint URL.
func NewClient(endpoint string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data *struct {
		Pairs []model.Pair `json:"pairs"`
	} `json:"data"`
	Errors []gqlError `json:"errors"`
}

// PairsPage fetches one page of pairs created strictly after cursor.
func (c *Client) PairsPage(ctx context.Context, cursor int64) ([]model.Pair, error) {
	body, err := json.Marshal(gqlRequest{
		Query:     pairsQuery,
		Variables: map[string]any{"cursor": cursor},
	})
	if err != nil {
		return nil, fmt.Errorf("encode pairs query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build pairs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post pairs query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var decoded gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode pairs response: %v", ErrBadShape, err)
	}

	if len(decoded.Errors) > 0 {
		for _, gqlErr := range decoded.Errors {
			c.logger.Error("subgraph reported error", zap.String("message", gqlErr.Message))
		}
		return nil, fmt.Errorf("%w: %d error(s), first: %s",
			ErrSourceReported, len(decoded.Errors), decoded.Errors[0].Message)
	}

	if decoded.Data == nil || decoded.Data.Pairs == nil {
		return nil, fmt.Errorf("%w: missing data.pairs", ErrBadShape)
	}

	return decoded.Data.Pairs, nil
}

// SetHTTPClient replaces the underlying HTTP client (for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}
