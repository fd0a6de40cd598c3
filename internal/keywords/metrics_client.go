package keywords

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// MetricsClient calls the external keyword-metrics provider.
type MetricsClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	secret     string
	customerID string
}

func NewMetricsClient(baseURL, apiKey, secret, customerID string, timeout time.Duration) *MetricsClient {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &MetricsClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		secret:     secret,
		customerID: customerID,
	}
}

// RelatedCandidates fetches the provider's related-keyword list for a term.
func (c *MetricsClient) RelatedCandidates(ctx context.Context, keyword string) ([]Candidate, error) {
	u := fmt.Sprintf("%s?hintKeywords=%s&showDetail=1", c.baseURL, url.QueryEscape(normalizeTerm(keyword)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create metrics request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("X-API-SECRET", c.secret)
	req.Header.Set("X-CUSTOMER", c.customerID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("keyword metrics provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read metrics response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("keyword metrics provider returned status %d", resp.StatusCode)
	}

	return ParseCandidates(raw), nil
}

// ParseCandidates converts the provider's keywordList payload into
// Candidates. Volume and click fields may arrive as numbers or as censored
// strings ("< 10") which count as zero.
func ParseCandidates(raw []byte) []Candidate {
	list := gjson.GetBytes(raw, "keywordList")
	var out []Candidate
	list.ForEach(func(_, item gjson.Result) bool {
		searches := censoredCount(item.Get("monthlyPcQcCnt")) + censoredCount(item.Get("monthlyMobileQcCnt"))
		clicks := censoredFloat(item.Get("monthlyAvePcClkCnt")) + censoredFloat(item.Get("monthlyAveMobileClkCnt"))
		out = append(out, Candidate{
			Keyword:         item.Get("relKeyword").String(),
			MonthlySearches: searches,
			MonthlyClicks:   math.Round(clicks*10) / 10,
			Competition:     mapCompetition(item.Get("compIdx").String()),
		})
		return true
	})
	return out
}

// censoredCount reads a count that may be censored as a "< N" string.
func censoredCount(v gjson.Result) int {
	if v.Type == gjson.String && strings.Contains(v.String(), "<") {
		return 0
	}
	return int(v.Int())
}

func censoredFloat(v gjson.Result) float64 {
	if v.Type == gjson.String && strings.Contains(v.String(), "<") {
		return 0
	}
	return v.Float()
}

func mapCompetition(s string) string {
	switch strings.ToLower(s) {
	case "high", "높음":
		return CompetitionHigh
	case "mid", "medium", "보통":
		return CompetitionMid
	default:
		return CompetitionLow
	}
}
