package subgraph

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrSourceReported is returned when the response carries a GraphQL
	// errors array. Every message is logged before the aggregate is raised.
	ErrSourceReported = errors.New("subgraph reported errors")

	// ErrBadShape is returned when a success response is missing the
	// expected data.pairs structure or fails to decode.
	ErrBadShape = errors.New("unexpected subgraph response shape")
)

// StatusError is a non-success HTTP response from the gateway.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("subgraph request failed with status %d", e.Code)
}
