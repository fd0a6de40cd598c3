package keywords

import (
	"sort"
	"strings"
)

// Competition levels as exposed by the metrics provider.
const (
	CompetitionLow  = "low"
	CompetitionMid  = "mid"
	CompetitionHigh = "high"
)

// Viable band and merge limits for recommendations.
const (
	minViableVolume    = 300
	maxViableVolume    = 40000
	maxRecommendations = 5
	maxContainsSlots   = 3
)

// midCompetitionWeight biases the ranking toward moderate-competition,
// high-engagement terms over high-volume/high-competition ones.
const midCompetitionWeight = 1.5

// Candidate is one related keyword from the metrics provider, with censored
// counts already normalized to zero.
type Candidate struct {
	Keyword         string  `json:"keyword"`
	MonthlySearches int     `json:"monthly_searches"`
	MonthlyClicks   float64 `json:"monthly_clicks"`
	Competition     string  `json:"competition"`
}

// Analysis is the analyze endpoint's result: the input keyword's own stats
// and up to five recommended related keywords.
type Analysis struct {
	Main            Candidate   `json:"main"`
	Recommendations []Candidate `json:"recommendations"`
}

type scored struct {
	Candidate
	score float64
}

// ctr returns the click-through rate in percent, 0 when there are no searches.
func ctr(c Candidate) float64 {
	if c.MonthlySearches == 0 {
		return 0
	}
	return c.MonthlyClicks / float64(c.MonthlySearches) * 100
}

func scoreOf(c Candidate) float64 {
	weight := 1.0
	if c.Competition == CompetitionMid {
		weight = midCompetitionWeight
	}
	return ctr(c) * weight
}

// normalizeTerm makes keyword comparison case- and whitespace-insensitive.
func normalizeTerm(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// Analyze resolves the input keyword's own stats from the candidate list and
// builds the recommendation list:
//
//  1. score every candidate (CTR weighted by competition),
//  2. keep candidates in the viable band (volume within limits, competition
//     not high, not the input term itself),
//  3. split into the group containing the input term and the group that does
//     not, each sorted by score descending,
//  4. take up to 3 from the containing group, then fill to 5 from the rest.
func Analyze(input string, candidates []Candidate) Analysis {
	norm := normalizeTerm(input)

	main := Candidate{Keyword: input}
	for _, c := range candidates {
		if normalizeTerm(c.Keyword) == norm {
			main = c
			break
		}
	}

	var groupA, groupB []scored
	for _, c := range candidates {
		cn := normalizeTerm(c.Keyword)
		if cn == norm {
			continue
		}
		if c.MonthlySearches < minViableVolume || c.MonthlySearches > maxViableVolume {
			continue
		}
		if c.Competition == CompetitionHigh {
			continue
		}
		s := scored{Candidate: c, score: scoreOf(c)}
		if strings.Contains(cn, norm) {
			groupA = append(groupA, s)
		} else {
			groupB = append(groupB, s)
		}
	}

	sort.SliceStable(groupA, func(i, j int) bool { return groupA[i].score > groupA[j].score })
	sort.SliceStable(groupB, func(i, j int) bool { return groupB[i].score > groupB[j].score })

	recs := make([]Candidate, 0, maxRecommendations)
	for _, s := range groupA {
		if len(recs) == maxContainsSlots {
			break
		}
		recs = append(recs, s.Candidate)
	}
	for _, s := range groupB {
		if len(recs) == maxRecommendations {
			break
		}
		recs = append(recs, s.Candidate)
	}

	return Analysis{Main: main, Recommendations: recs}
}
