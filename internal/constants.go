package internal

type uiTheme struct {
	PrimaryColor   string
	SecondaryColor string
	ErrorColor     string
	TertiaryColor  string
	SuccessColor   string
	DarkTextColor  string
	LightTextColor string
}

var Theme = uiTheme{
	PrimaryColor:   "#9b87f5", // Vibe purple
	SecondaryColor: "#ccc",    // Light gray for body text
	ErrorColor:     "#FF5F5F",
	TertiaryColor:  "#666666", // Hints and placeholders
	SuccessColor:   "#2FBF71",
	DarkTextColor:  "#111827", // Label on light swatches
	LightTextColor: "#FFFFFF", // Label on dark swatches
}
