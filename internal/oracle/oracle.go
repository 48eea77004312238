// Package oracle adapts an external decision service that settles markets
// from a news summary. The engine only depends on the Resolver interface;
// the OpenAI-backed client lives in openai.go.
package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// OutcomeRef identifies one candidate outcome sent to the oracle.
type OutcomeRef struct {
	ID    uuid.UUID
	Label string
}

// Request carries the full market context the oracle decides on.
type Request struct {
	MarketTitle string
	NewsSummary string
	Outcomes    []OutcomeRef
}

// Decision is the oracle's validated answer.
type Decision struct {
	WinnerID   uuid.UUID
	Confidence float64
	Reasoning  string
}

// Resolver decides which outcome of a market was realised in the real
// world. Implementations must return a winner drawn from the supplied
// outcome set or an *Error.
type Resolver interface {
	Resolve(ctx context.Context, req Request) (*Decision, error)
}

// ErrorKind classifies oracle failures.
type ErrorKind string

const (
	KindTransport     ErrorKind = "transport"
	KindEmptyResponse ErrorKind = "empty_response"
	KindMalformedJSON ErrorKind = "malformed_json"
	KindSchema        ErrorKind = "schema"
	KindUnknownWinner ErrorKind = "unknown_winner"
	KindBadRequest    ErrorKind = "bad_request"
)

// Error is returned for every oracle failure. Retriable reports whether the
// caller may safely retry the whole resolve (the market stays CLOSED either
// way).
type Error struct {
	Kind      ErrorKind
	Retriable bool
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("oracle %s failure: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, &oracle.Error{}) checks regardless of kind.
func (e *Error) Is(target error) bool {
	_, ok := target.(*Error)
	return ok
}

func newError(kind ErrorKind, retriable bool, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Retriable: retriable, Err: fmt.Errorf(format, args...)}
}

// ValidateRequest rejects requests the oracle must never see: a market needs
// at least two outcomes and a non-empty news summary to be decidable.
func ValidateRequest(req Request) error {
	if len(req.Outcomes) < 2 {
		return newError(KindBadRequest, false, "market must have at least two outcomes, got %d", len(req.Outcomes))
	}
	if strings.TrimSpace(req.NewsSummary) == "" {
		return newError(KindBadRequest, false, "news summary is empty")
	}
	return nil
}

// validateDecision checks the decoded answer against the supplied outcome
// set. An invented winner id would corrupt settlement, so it fails loudly.
func validateDecision(req Request, winner string, confidence float64, reasoning string) (*Decision, error) {
	if winner == "" {
		return nil, newError(KindSchema, false, "winner is empty")
	}
	if reasoning == "" {
		return nil, newError(KindSchema, false, "reasoning is empty")
	}
	if confidence < 0 || confidence > 1 {
		return nil, newError(KindSchema, false, "confidence %v outside [0,1]", confidence)
	}

	winnerID, err := uuid.Parse(winner)
	if err != nil {
		return nil, newError(KindUnknownWinner, false, "winner %q is not a valid outcome id", winner)
	}
	for _, o := range req.Outcomes {
		if o.ID == winnerID {
			return &Decision{WinnerID: winnerID, Confidence: confidence, Reasoning: reasoning}, nil
		}
	}
	return nil, newError(KindUnknownWinner, false, "winner %q is not among the market's outcomes", winner)
}
