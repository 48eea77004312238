package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pointsbazaar/market-engine/internal/logger"
	"github.com/pointsbazaar/market-engine/internal/metrics"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	maxTokens      = 512
)

// OpenAIConfig holds the settings for the OpenAI-backed resolver.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string        // defaults to the public API root
	Timeout time.Duration // bounds the whole oracle call
}

// OpenAIResolver implements Resolver against the OpenAI chat-completions
// API. Temperature is pinned to 0 so identical inputs decode to identical
// decisions.
type OpenAIResolver struct {
	cfg        OpenAIConfig
	httpClient *http.Client
}

// NewOpenAIResolver creates a resolver from explicit configuration. The
// dependency is injected at construction so tests can substitute a double
// for the whole Resolver instead.
func NewOpenAIResolver(cfg OpenAIConfig) (*OpenAIResolver, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("oracle: OpenAI API key is not set")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("oracle: model is not set")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenAIResolver{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// chat-completions wire types, reduced to the fields this client uses
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// decisionPayload is the JSON object the model is instructed to emit.
type decisionPayload struct {
	Winner     string   `json:"winner"`
	Confidence *float64 `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// Resolve sends the market context to the model and validates its answer.
func (r *OpenAIResolver) Resolve(ctx context.Context, req Request) (*Decision, error) {
	log := logger.FromContext(ctx)

	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	body := chatRequest{
		Model:          r.cfg.Model,
		Temperature:    0,
		MaxTokens:      maxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: buildSystemPrompt(req.Outcomes)},
			{Role: "user", Content: buildUserPrompt(req)},
		},
	}

	raw, err := r.doRequest(ctx, body)
	if err != nil {
		var oerr *Error
		if errors.As(err, &oerr) {
			metrics.OracleFailures.WithLabelValues(string(oerr.Kind)).Inc()
		}
		return nil, err
	}

	var payload decisionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		metrics.OracleFailures.WithLabelValues(string(KindMalformedJSON)).Inc()
		return nil, newError(KindMalformedJSON, false, "response is not valid JSON: %v", err)
	}
	if payload.Confidence == nil {
		metrics.OracleFailures.WithLabelValues(string(KindSchema)).Inc()
		return nil, newError(KindSchema, false, "confidence is missing")
	}

	decision, err := validateDecision(req, payload.Winner, *payload.Confidence, payload.Reasoning)
	if err != nil {
		var oerr *Error
		if errors.As(err, &oerr) {
			metrics.OracleFailures.WithLabelValues(string(oerr.Kind)).Inc()
		}
		return nil, err
	}

	log.Info("Oracle decided market outcome",
		"market", req.MarketTitle,
		"winner", decision.WinnerID,
		"confidence", decision.Confidence)

	return decision, nil
}

// doRequest performs the HTTP round trip and returns the model's message
// content.
func (r *OpenAIResolver) doRequest(ctx context.Context, body chatRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", newError(KindTransport, false, "marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", newError(KindTransport, false, "build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return "", newError(KindTransport, true, "request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", newError(KindTransport, true, "read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		// 5xx and 429 are transient; 4xx means the request itself is bad.
		retriable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return "", newError(KindTransport, retriable, "status %d: %s", resp.StatusCode, truncate(string(data), 256))
	}

	var cr chatResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return "", newError(KindMalformedJSON, false, "decode envelope: %v", err)
	}
	if cr.Error != nil {
		return "", newError(KindTransport, false, "API error %s: %s", cr.Error.Type, cr.Error.Message)
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return "", newError(KindEmptyResponse, true, "model returned an empty response")
	}

	return cr.Choices[0].Message.Content, nil
}

func buildSystemPrompt(outcomes []OutcomeRef) string {
	var b strings.Builder
	b.WriteString("You are a fair and impartial prediction market resolver for a virtual-points platform.\n\n")
	b.WriteString("Your job is to read a market title and a news summary, then determine which outcome has been ACTUALLY realised in the real world.\n\n")
	b.WriteString("Available outcomes:\n")
	for _, o := range outcomes {
		fmt.Fprintf(&b, "  - ID: %q -> Label: %q\n", o.ID, o.Label)
	}
	b.WriteString("\nRules:\n")
	b.WriteString("1. Choose EXACTLY ONE winner from the provided outcome IDs.\n")
	b.WriteString("2. Confidence must be a float between 0.0 and 1.0.\n")
	b.WriteString("3. If the news summary is ambiguous or inconclusive, set confidence below 0.5 and pick the most likely outcome.\n")
	b.WriteString("4. Respond ONLY with a valid JSON object, no markdown fences, no extra text:\n")
	b.WriteString(`{"winner": "<exact outcome ID>", "confidence": <float 0-1>, "reasoning": "<one or two sentences>"}`)
	return b.String()
}

func buildUserPrompt(req Request) string {
	return fmt.Sprintf("Market title: %q\n\nNews summary:\n%s", req.MarketTitle, strings.TrimSpace(req.NewsSummary))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
