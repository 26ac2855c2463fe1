// Package spacyhttp annotates text through an HTTP service wrapping a
// spaCy pipeline such as de_core_news_sm.
package spacyhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/deutschkurs/internal/domain"
)

// DefaultModel is the German pipeline requested when none is configured.
const DefaultModel = "de_core_news_sm"

type annotateRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type annotateResponse struct {
	Tokens []apiToken `json:"tokens"`
}

type apiToken struct {
	Text string `json:"text"`
	Pos  string `json:"pos"`
}

// Client calls POST {base}/annotate.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. An empty model selects DefaultModel.
func NewClient(baseURL, model string, timeout time.Duration, logger *slog.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "spacyhttp"),
	}
}

// Annotate sends text to the service and maps each token's coarse tag with
// domain.MapCategory.
func (c *Client) Annotate(ctx context.Context, text string) ([]domain.Token, error) {
	body, err := json.Marshal(annotateRequest{Text: text, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("spacyhttp: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/annotate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("spacyhttp: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spacyhttp: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("spacyhttp: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("spacyhttp: decode json: %w", err)
	}

	tokens := make([]domain.Token, len(out.Tokens))
	for i, t := range out.Tokens {
		tokens[i] = domain.Token{Text: t.Text, Category: domain.MapCategory(t.Pos)}
	}

	c.log.DebugContext(ctx, "annotated",
		slog.Int("chars", len(text)),
		slog.Int("tokens", len(tokens)),
		slog.Duration("took", time.Since(start)),
	)
	return tokens, nil
}
