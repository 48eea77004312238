package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointsbazaar/market-engine/internal/metrics"
)

func testRequest() Request {
	return Request{
		MarketTitle: "Will the launch happen before Friday?",
		NewsSummary: "The rocket lifted off Thursday morning and reached orbit.",
		Outcomes: []OutcomeRef{
			{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Label: "Yes"},
			{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Label: "No"},
		},
	}
}

// newResolverServer runs an httptest server whose handler supplies the
// model's message content, and returns a resolver pointed at it.
func newResolverServer(t *testing.T, handler http.HandlerFunc) *OpenAIResolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r, err := NewOpenAIResolver(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return r
}

func chatReply(content string) string {
	env := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	data, _ := json.Marshal(env)
	return string(data)
}

func TestNewOpenAIResolver_RequiresKeyAndModel(t *testing.T) {
	_, err := NewOpenAIResolver(OpenAIConfig{Model: "gpt-4o"})
	require.Error(t, err)

	_, err = NewOpenAIResolver(OpenAIConfig{APIKey: "k"})
	require.Error(t, err)

	r, err := NewOpenAIResolver(OpenAIConfig{APIKey: "k", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, r.cfg.BaseURL)
}

func TestResolve_HappyPath(t *testing.T) {
	req := testRequest()
	winner := req.Outcomes[0].ID

	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Zero(t, body.Temperature)
		assert.Equal(t, "json_object", body.ResponseFormat.Type)
		require.Len(t, body.Messages, 2)
		assert.Contains(t, body.Messages[0].Content, winner.String())
		assert.Contains(t, body.Messages[1].Content, req.NewsSummary)

		fmt.Fprint(w, chatReply(fmt.Sprintf(
			`{"winner": %q, "confidence": 0.92, "reasoning": "The launch clearly happened Thursday."}`, winner)))
	})

	decision, err := resolver.Resolve(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, winner, decision.WinnerID)
	assert.Equal(t, 0.92, decision.Confidence)
	assert.NotEmpty(t, decision.Reasoning)
}

func TestResolve_MalformedJSONContent(t *testing.T) {
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply("The winner is Yes, confidence high."))
	})

	_, err := resolver.Resolve(context.Background(), testRequest())

	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, KindMalformedJSON, oerr.Kind)
	assert.False(t, oerr.Retriable)
}

func TestResolve_MissingConfidence(t *testing.T) {
	req := testRequest()
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply(fmt.Sprintf(
			`{"winner": %q, "reasoning": "ok"}`, req.Outcomes[0].ID)))
	})

	_, err := resolver.Resolve(context.Background(), req)

	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, KindSchema, oerr.Kind)
}

func TestResolve_ConfidenceOutOfRange(t *testing.T) {
	req := testRequest()
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply(fmt.Sprintf(
			`{"winner": %q, "confidence": 1.4, "reasoning": "ok"}`, req.Outcomes[0].ID)))
	})

	_, err := resolver.Resolve(context.Background(), req)

	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, KindSchema, oerr.Kind)
}

func TestResolve_UnknownWinnerID(t *testing.T) {
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply(
			`{"winner": "33333333-3333-3333-3333-333333333333", "confidence": 0.8, "reasoning": "ok"}`))
	})

	_, err := resolver.Resolve(context.Background(), testRequest())

	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, KindUnknownWinner, oerr.Kind)
	assert.False(t, oerr.Retriable)
}

func TestResolve_NonUUIDWinner(t *testing.T) {
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatReply(
			`{"winner": "Yes", "confidence": 0.8, "reasoning": "ok"}`))
	})

	_, err := resolver.Resolve(context.Background(), testRequest())

	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, KindUnknownWinner, oerr.Kind)
}

func TestResolve_EmptyChoices(t *testing.T) {
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	})

	_, err := resolver.Resolve(context.Background(), testRequest())

	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, KindEmptyResponse, oerr.Kind)
	assert.True(t, oerr.Retriable)
}

func TestResolve_EmptyChoicesCountedUnderOwnKind(t *testing.T) {
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	})

	emptyBefore := testutil.ToFloat64(metrics.OracleFailures.WithLabelValues(string(KindEmptyResponse)))
	transportBefore := testutil.ToFloat64(metrics.OracleFailures.WithLabelValues(string(KindTransport)))

	_, err := resolver.Resolve(context.Background(), testRequest())
	require.Error(t, err)

	assert.Equal(t, emptyBefore+1, testutil.ToFloat64(metrics.OracleFailures.WithLabelValues(string(KindEmptyResponse))))
	assert.Equal(t, transportBefore, testutil.ToFloat64(metrics.OracleFailures.WithLabelValues(string(KindTransport))))
}

func TestResolve_ServerErrorIsRetriable(t *testing.T) {
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := resolver.Resolve(context.Background(), testRequest())

	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, KindTransport, oerr.Kind)
	assert.True(t, oerr.Retriable)
}

func TestResolve_RateLimitIsRetriable(t *testing.T) {
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	_, err := resolver.Resolve(context.Background(), testRequest())

	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.True(t, oerr.Retriable)
}

func TestResolve_AuthErrorIsNotRetriable(t *testing.T) {
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	})

	_, err := resolver.Resolve(context.Background(), testRequest())

	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, KindTransport, oerr.Kind)
	assert.False(t, oerr.Retriable)
}

func TestResolve_APIErrorEnvelope(t *testing.T) {
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error": {"message": "model not found", "type": "invalid_request_error"}}`)
	})

	_, err := resolver.Resolve(context.Background(), testRequest())

	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, KindTransport, oerr.Kind)
	assert.Contains(t, err.Error(), "model not found")
}

func TestResolve_RejectsSingleOutcome(t *testing.T) {
	called := false
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := testRequest()
	req.Outcomes = req.Outcomes[:1]
	_, err := resolver.Resolve(context.Background(), req)

	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, KindBadRequest, oerr.Kind)
	assert.False(t, called)
}

func TestResolve_RejectsEmptySummary(t *testing.T) {
	resolver := newResolverServer(t, func(w http.ResponseWriter, r *http.Request) {})

	req := testRequest()
	req.NewsSummary = "   "
	_, err := resolver.Resolve(context.Background(), req)

	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, KindBadRequest, oerr.Kind)
}

func TestError_IsMatchesKindSentinel(t *testing.T) {
	err := newError(KindUnknownWinner, false, "nope")
	var oerr *Error
	assert.ErrorAs(t, fmt.Errorf("wrap: %w", err), &oerr)
	assert.Equal(t, KindUnknownWinner, oerr.Kind)
}
