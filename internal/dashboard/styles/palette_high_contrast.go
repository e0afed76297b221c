package styles

// HighContrastTheme favors legibility on low-quality terminals.
var HighContrastTheme = Theme{
	Name:        "high-contrast",
	BorderStyle: "sharp",
	Base: BaseColors{
		Background: "16",
		Foreground: "231",
		Muted:      "250",
		Accent:     "51",
		Border:     "231",
	},
	Status: StatusColors{
		NeedsAttention: "196",
		Active:         "51",
		Resolved:       "46",
	},
	Sentiment: SentimentColors{
		Happy:   "46",
		Sad:     "123",
		Angry:   "196",
		Neutral: "250",
		Anxious: "226",
	},
	Message: MessageColors{
		Bot:  "225",
		User: "87",
	},
	Chrome: ChromeColors{
		Header:       "117",
		Footer:       "159",
		Breadcrumb:   "195",
		SelectedItem: "51",
		Checked:      "46",
	},
	Borders: BorderColors{
		ActivePane:   "231",
		InactivePane: "250",
		Divider:      "248",
	},
}
