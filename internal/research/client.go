package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Client calls the external search/research provider. Errors are opaque to
// the orchestrator; it only needs to know the step failed.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

func NewClient(url, apiKey string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		apiKey:     apiKey,
	}
}

type researchRequest struct {
	Query       string   `json:"query"`
	FocusTopics []string `json:"focus_topics"`
}

// Research asks the provider for free-text research on the keyword, steered
// by the theme's guidance topics.
func (c *Client) Research(ctx context.Context, keyword, theme string) (string, error) {
	guidance := GuidanceFor(theme)

	query := fmt.Sprintf("Research the topic %q for a blog post. Cover: %s.",
		keyword, strings.Join(guidance.Topics, "; "))

	body, err := json.Marshal(researchRequest{Query: query, FocusTopics: guidance.Topics})
	if err != nil {
		return "", fmt.Errorf("marshal research request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create research request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("research provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read research response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("research provider returned status %d", resp.StatusCode)
	}

	// The provider wraps its text differently across API versions; take the
	// first known field that is present.
	parsed := gjson.ParseBytes(raw)
	for _, path := range []string{"result", "content", "choices.0.message.content"} {
		if v := parsed.Get(path); v.Exists() && v.String() != "" {
			return v.String(), nil
		}
	}
	return "", fmt.Errorf("research provider returned no usable content")
}
