// Package dictapi looks words up in a JSON dictionary web service.
package dictapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/deutschkurs/internal/provider"
)

// Provider-specific attribute keys.
const (
	AttrPlural  = "plural"
	AttrExample = "example"
)

// Provider fetches dictionary data over HTTP.
//
//	GET {base}/entries/{word}  200 with []apiEntry, 404 if unknown
//	GET {base}/search?q={word} 200 with {"words": [...]}
type Provider struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewProvider creates a Provider for the service at baseURL.
func NewProvider(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: 500 * time.Millisecond,
		log:        logger.With("adapter", "dictapi"),
	}
}

// Define fetches the entry for word.
// Returns nil, nil if the word is not found (HTTP 404).
func (p *Provider) Define(ctx context.Context, word string) (*provider.Definition, error) {
	reqURL := p.baseURL + "/entries/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "dictapi request", slog.String("word", word))

	var entries []apiEntry
	found, err := p.getJSON(ctx, reqURL, word, &entries)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	def, err := mapEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("dictapi: %q: %w", word, err)
	}

	p.log.DebugContext(ctx, "dictapi response",
		slog.String("word", word),
		slog.Int("entries", len(entries)),
		slog.String("gender", def.Gender),
	)
	return def, nil
}

// Search returns headwords similar to word. A 404 is an empty result.
func (p *Provider) Search(ctx context.Context, word string) ([]string, error) {
	reqURL := p.baseURL + "/search?q=" + url.QueryEscape(word)

	var res apiSearch
	found, err := p.getJSON(ctx, reqURL, word, &res)
	if err != nil || !found {
		return nil, err
	}
	return res.Words, nil
}

// getJSON performs a GET and decodes a 200 body into dst. A 404 reports
// found=false without error.
func (p *Provider) getJSON(ctx context.Context, reqURL, word string, dst any) (found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("dictapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.doWithRetry(ctx, req, word)
	if err != nil {
		p.log.ErrorContext(ctx, "dictapi request failed", slog.String("word", word), slog.String("error", err.Error()))
		return false, fmt.Errorf("dictapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("dictapi: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("dictapi: read body: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return false, fmt.Errorf("dictapi: decode json: %w: %v", provider.ErrMalformed, err)
	}
	return true, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "dictapi retry", slog.String("word", word), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	resp, err = p.httpClient.Do(req)
	if err == nil && resp.StatusCode >= 500 {
		resp.Body.Close()
		return nil, fmt.Errorf("status %d after retry", resp.StatusCode)
	}
	return resp, err
}

// mapEntries merges homograph entries into one Definition: the headword and
// pronunciation of the first entry, the first noun gender found, and all
// senses in order, de-duplicated.
func mapEntries(entries []apiEntry) (*provider.Definition, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty entry list", provider.ErrMalformed)
	}

	def := &provider.Definition{
		Word:       entries[0].Word,
		Dictionary: entries[0].Dictionary,
	}
	var senses []string
	seen := make(map[string]struct{})

	for _, entry := range entries {
		if def.Pronunciation == "" {
			for _, ph := range entry.Phonetics {
				if t := strings.Trim(strings.TrimSpace(ph.Text), "/[]"); t != "" {
					def.Pronunciation = t
					break
				}
			}
		}
		for _, m := range entry.Meanings {
			if def.Gender == "" {
				if g := provider.NormalizeGender(m.Gender); g != "" {
					def.Gender = g
					def.Article = provider.ArticleFor(g)
					if m.Plural != "" {
						setExtra(def, AttrPlural, m.Plural)
					}
				}
			}
			for _, d := range m.Definitions {
				text := strings.TrimSpace(d.Definition)
				if text == "" {
					continue
				}
				if _, dup := seen[text]; dup {
					continue
				}
				seen[text] = struct{}{}
				senses = append(senses, text)
				if d.Example != "" && def.Extra[AttrExample] == "" {
					setExtra(def, AttrExample, d.Example)
				}
			}
		}
	}

	if def.Word == "" {
		return nil, fmt.Errorf("%w: missing headword", provider.ErrMalformed)
	}
	if len(senses) == 0 {
		return nil, fmt.Errorf("%w: %q has no senses", provider.ErrMalformed, def.Word)
	}
	def.Text = strings.Join(senses, "; ")
	return def, nil
}

func setExtra(def *provider.Definition, key, value string) {
	if def.Extra == nil {
		def.Extra = make(map[string]string)
	}
	def.Extra[key] = value
}
