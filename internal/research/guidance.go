package research

import "github.com/blogvolt/backend/internal/models"

// Guidance is the theme-specific set of topics the research provider is asked
// to cover for a keyword.
type Guidance struct {
	Topics []string
}

var guidanceByTheme = map[string]Guidance{
	models.ThemeRestaurant: {Topics: []string{
		"signature menu items and typical prices",
		"location, parking and opening hours",
		"atmosphere and who the place suits",
		"recent visitor reviews and common complaints",
	}},
	models.ThemeTravel: {Topics: []string{
		"must-see spots and suggested itinerary",
		"transport options and travel time",
		"seasonal considerations and best time to visit",
		"estimated budget per person",
	}},
	models.ThemeFashion: {Topics: []string{
		"current trends related to the keyword",
		"styling combinations and occasions",
		"price ranges and where to buy",
		"material and care considerations",
	}},
	models.ThemeFinance: {Topics: []string{
		"definitions and background a beginner needs",
		"concrete figures, rates and recent changes",
		"risks and common mistakes",
		"practical first steps",
	}},
	models.ThemeReview: {Topics: []string{
		"product specifications and price",
		"strengths reported by actual users",
		"weaknesses and dealbreakers",
		"comparison against popular alternatives",
	}},
	models.ThemeDaily: {Topics: []string{
		"relatable situations around the keyword",
		"practical tips readers can apply",
		"common experiences and opinions",
	}},
}

var defaultGuidance = Guidance{Topics: []string{
	"background and context of the keyword",
	"facts, figures and recent developments",
	"frequently asked questions",
	"practical takeaways for readers",
}}

// GuidanceFor returns the research guidance for a theme, falling back to the
// default set for unknown themes and ThemeOther.
func GuidanceFor(theme string) Guidance {
	if g, ok := guidanceByTheme[theme]; ok {
		return g
	}
	return defaultGuidance
}
