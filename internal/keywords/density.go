package keywords

import (
	"fmt"
	"math/rand"
)

// Density ranges. These stand in for a real content-statistics aggregation;
// the contract only promises values inside the bounds.
const (
	densityCharMin, densityCharMax   = 2000, 3000
	densityImageMin, densityImageMax = 15, 25
	densityKwMin, densityKwMax       = 5, 10
)

// Density describes how competing posts for a keyword are typically built.
type Density struct {
	AverageCharCount  int      `json:"averageCharCount"`
	AverageImageCount int      `json:"averageImageCount"`
	KeywordCount      int      `json:"keywordCount"`
	TopKeywords       []string `json:"topKeywords"`
}

var topKeywordPatterns = []string{"%s recommendation", "%s review", "%s price", "best %s", "%s comparison"}

// EstimateDensity returns content-density heuristics for a keyword.
func EstimateDensity(keyword string) Density {
	top := make([]string, 0, len(topKeywordPatterns))
	for _, p := range topKeywordPatterns {
		top = append(top, fmt.Sprintf(p, keyword))
	}
	return Density{
		AverageCharCount:  densityCharMin + rand.Intn(densityCharMax-densityCharMin+1),
		AverageImageCount: densityImageMin + rand.Intn(densityImageMax-densityImageMin+1),
		KeywordCount:      densityKwMin + rand.Intn(densityKwMax-densityKwMin+1),
		TopKeywords:       top,
	}
}
