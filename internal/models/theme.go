package models

// Content themes. Every theme-specific behavior (search guidance, persona,
// outline) is a lookup keyed by these values with ThemeOther as fallback.
const (
	ThemeRestaurant = "restaurant"
	ThemeTravel     = "travel"
	ThemeFashion    = "fashion"
	ThemeFinance    = "finance"
	ThemeReview     = "review"
	ThemeDaily      = "daily"
	ThemeOther      = "other"
)

var validThemes = map[string]bool{
	ThemeRestaurant: true,
	ThemeTravel:     true,
	ThemeFashion:    true,
	ThemeFinance:    true,
	ThemeReview:     true,
	ThemeDaily:      true,
	ThemeOther:      true,
}

// IsValidTheme reports whether theme is one of the known content themes.
func IsValidTheme(theme string) bool {
	return validThemes[theme]
}

// Generation modes. The volt cost per mode comes from config.
const (
	ModeBasic = "basic"
	ModePro   = "pro"
)

// IsValidMode reports whether mode is a known generation mode.
func IsValidMode(mode string) bool {
	return mode == ModeBasic || mode == ModePro
}
