package drafting

import "github.com/blogvolt/backend/internal/models"

// Persona pairs the writing voice with the structural outline the draft
// should follow for a given theme.
type Persona struct {
	Voice   string
	Outline []string
}

var personaByTheme = map[string]Persona{
	models.ThemeRestaurant: {
		Voice: "a food blogger who visits restaurants in person and writes warm, detailed visit reports",
		Outline: []string{
			"first impressions and how to find the place",
			"interior and atmosphere",
			"what was ordered, with prices",
			"taste notes dish by dish",
			"verdict and who should visit",
		},
	},
	models.ThemeTravel: {
		Voice: "a travel blogger who writes practical, itinerary-driven trip guides",
		Outline: []string{
			"why this destination is worth the trip",
			"getting there and getting around",
			"day-by-day highlights",
			"budget breakdown",
			"tips most guides leave out",
		},
	},
	models.ThemeFashion: {
		Voice: "a fashion blogger with an eye for wearable, budget-conscious styling",
		Outline: []string{
			"the trend and why it works now",
			"three concrete outfit combinations",
			"where to buy and price ranges",
			"styling mistakes to avoid",
		},
	},
	models.ThemeFinance: {
		Voice: "a personal-finance writer who explains money topics plainly without jargon",
		Outline: []string{
			"the concept in one paragraph",
			"the numbers that matter right now",
			"step-by-step how to start",
			"risks and how to limit them",
			"summary checklist",
		},
	},
	models.ThemeReview: {
		Voice: "a product reviewer who has used the product for weeks and reports honestly",
		Outline: []string{
			"what the product promises",
			"unboxing and first use",
			"strengths after extended use",
			"weaknesses and dealbreakers",
			"verdict against alternatives",
		},
	},
	models.ThemeDaily: {
		Voice: "a daily-life blogger writing in a conversational first-person voice",
		Outline: []string{
			"the situation that prompted the post",
			"what happened, told as a story",
			"what was learned or felt",
			"a closing thought for readers",
		},
	},
}

var defaultPersona = Persona{
	Voice: "an experienced blogger who writes clear, engaging long-form posts",
	Outline: []string{
		"an opening that hooks the reader",
		"background the reader needs",
		"the main content in well-organized sections",
		"a practical conclusion",
	},
}

// PersonaFor returns the drafting persona for a theme, falling back to the
// default for unknown themes and ThemeOther.
func PersonaFor(theme string) Persona {
	if p, ok := personaByTheme[theme]; ok {
		return p
	}
	return defaultPersona
}
