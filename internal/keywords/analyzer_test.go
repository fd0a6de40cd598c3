package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cand builds a low-competition candidate whose score equals the given CTR
// (weight 1.0, searches fixed at 1000).
func cand(keyword string, ctrPercent float64) Candidate {
	return Candidate{
		Keyword:         keyword,
		MonthlySearches: 1000,
		MonthlyClicks:   ctrPercent * 10, // clicks/1000*100 == ctrPercent
		Competition:     CompetitionLow,
	}
}

func TestCTR(t *testing.T) {
	assert.InDelta(t, 9.0, ctr(Candidate{MonthlySearches: 1000, MonthlyClicks: 90}), 1e-9)
	assert.Zero(t, ctr(Candidate{MonthlySearches: 0, MonthlyClicks: 50}))
}

func TestScore_MidCompetitionWeight(t *testing.T) {
	low := Candidate{MonthlySearches: 1000, MonthlyClicks: 90, Competition: CompetitionLow}
	mid := Candidate{MonthlySearches: 1000, MonthlyClicks: 90, Competition: CompetitionMid}
	assert.InDelta(t, 9.0, scoreOf(low), 1e-9)
	assert.InDelta(t, 13.5, scoreOf(mid), 1e-9)
}

// The merge fixture: group A = [A-core(9), A2(3)], group B = [B1(8), B2(7)].
// A contributes its 2, B fills the rest; result has 4 items, A then B, each
// group ordered by score.
func TestAnalyze_Merge(t *testing.T) {
	candidates := []Candidate{
		cand("cam core", 9),
		cand("tripod one", 8),
		cand("tripod two", 7),
		cand("cam light", 3),
	}

	result := Analyze("cam", candidates)
	require.Len(t, result.Recommendations, 4)

	got := make([]string, 0, 4)
	for _, r := range result.Recommendations {
		got = append(got, r.Keyword)
	}
	assert.Equal(t, []string{"cam core", "cam light", "tripod one", "tripod two"}, got)
}

func TestAnalyze_GroupACapIsThree(t *testing.T) {
	candidates := []Candidate{
		cand("cam a", 9),
		cand("cam b", 8),
		cand("cam c", 7),
		cand("cam d", 6), // 4th containing candidate must be cut
		cand("other x", 5),
		cand("other y", 4),
	}

	result := Analyze("cam", candidates)
	require.Len(t, result.Recommendations, 5)

	got := make([]string, 0, 5)
	for _, r := range result.Recommendations {
		got = append(got, r.Keyword)
	}
	assert.Equal(t, []string{"cam a", "cam b", "cam c", "other x", "other y"}, got)
}

func TestAnalyze_ViableBandFilter(t *testing.T) {
	tooBig := cand("cam big", 9)
	tooBig.MonthlySearches = 50000
	tooSmall := cand("cam small", 9)
	tooSmall.MonthlySearches = 100
	contested := cand("cam hot", 9)
	contested.Competition = CompetitionHigh
	ok := cand("cam fine", 1)

	result := Analyze("cam", []Candidate{tooBig, tooSmall, contested, ok})
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "cam fine", result.Recommendations[0].Keyword)
}

func TestAnalyze_MainResolution(t *testing.T) {
	self := Candidate{Keyword: "Cam", MonthlySearches: 12000, MonthlyClicks: 340, Competition: CompetitionMid}
	result := Analyze("cam", []Candidate{self, cand("cam core", 5)})
	// Matching is case- and whitespace-insensitive; the input's own entry is
	// the main stat and never a recommendation.
	assert.Equal(t, 12000, result.Main.MonthlySearches)
	for _, r := range result.Recommendations {
		assert.NotEqual(t, "Cam", r.Keyword)
	}

	missing := Analyze("cam", []Candidate{cand("tripod", 5)})
	assert.Equal(t, "cam", missing.Main.Keyword)
	assert.Zero(t, missing.Main.MonthlySearches)
	assert.Zero(t, missing.Main.MonthlyClicks)
}

func TestAnalyze_ContainsIsWhitespaceInsensitive(t *testing.T) {
	spaced := cand("hand drip cafe", 5)
	result := Analyze("handdrip", []Candidate{spaced, cand("espresso bar", 9)})
	require.Len(t, result.Recommendations, 2)
	// "hand drip cafe" normalizes to HANDDRIPCAFE which contains HANDDRIP, so
	// it leads despite the lower score.
	assert.Equal(t, "hand drip cafe", result.Recommendations[0].Keyword)
}

func TestParseCandidates_CensoredCounts(t *testing.T) {
	raw := []byte(`{"keywordList":[
		{"relKeyword":"cam core","monthlyPcQcCnt":1200,"monthlyMobileQcCnt":3400,
		 "monthlyAvePcClkCnt":10.24,"monthlyAveMobileClkCnt":20.01,"compIdx":"mid"},
		{"relKeyword":"cam rare","monthlyPcQcCnt":"< 10","monthlyMobileQcCnt":"< 10",
		 "monthlyAvePcClkCnt":"< 10","monthlyAveMobileClkCnt":"< 10","compIdx":"HIGH"}
	]}`)

	got := ParseCandidates(raw)
	require.Len(t, got, 2)

	assert.Equal(t, 4600, got[0].MonthlySearches)
	assert.InDelta(t, 30.3, got[0].MonthlyClicks, 1e-9) // summed then rounded to 1 decimal
	assert.Equal(t, CompetitionMid, got[0].Competition)

	assert.Zero(t, got[1].MonthlySearches)
	assert.Zero(t, got[1].MonthlyClicks)
	assert.Equal(t, CompetitionHigh, got[1].Competition)
}

func TestEstimateDensity_Bounds(t *testing.T) {
	for i := 0; i < 50; i++ {
		d := EstimateDensity("cam")
		assert.GreaterOrEqual(t, d.AverageCharCount, 2000)
		assert.LessOrEqual(t, d.AverageCharCount, 3000)
		assert.GreaterOrEqual(t, d.AverageImageCount, 15)
		assert.LessOrEqual(t, d.AverageImageCount, 25)
		assert.GreaterOrEqual(t, d.KeywordCount, 5)
		assert.LessOrEqual(t, d.KeywordCount, 10)
		assert.NotEmpty(t, d.TopKeywords)
	}
}
