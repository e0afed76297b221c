package styles

// DefaultTheme is the baseline dark palette.
var DefaultTheme = Theme{
	Name:          "default",
	BorderStyle:   "rounded",
	AvatarPalette: append([]string(nil), AvatarColorPalette...),
	Base: BaseColors{
		Background: "234",
		Foreground: "252",
		Muted:      "245",
		Accent:     "75",
		Border:     "240",
	},
	Status: StatusColors{
		NeedsAttention: "203",
		Active:         "75",
		Resolved:       "41",
	},
	Sentiment: SentimentColors{
		Happy:   "41",
		Sad:     "111",
		Angry:   "203",
		Neutral: "245",
		Anxious: "214",
	},
	Message: MessageColors{
		Bot:  "147",
		User: "81",
	},
	Chrome: ChromeColors{
		Header:       "111",
		Footer:       "110",
		Breadcrumb:   "109",
		SelectedItem: "75",
		Checked:      "41",
	},
	Borders: BorderColors{
		ActivePane:   "75",
		InactivePane: "240",
		Divider:      "238",
	},
}
