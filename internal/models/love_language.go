package models

// LoveLanguages is the fixed onboarding catalog. The two languages a user
// picks become their protected default metrics.
func LoveLanguages() []string {
	return []string{
		"Words of Affirmation",
		"Acts of Service",
		"Receiving Gifts",
		"Quality Time",
		"Physical Touch",
	}
}

func IsValidLoveLanguage(name string) bool {
	for _, language := range LoveLanguages() {
		if language == name {
			return true
		}
	}
	return false
}

func LoveLanguageIcon(name string) string {
	switch name {
	case "Words of Affirmation":
		return "chat"
	case "Acts of Service":
		return "hands"
	case "Receiving Gifts":
		return "gift"
	case "Quality Time":
		return "clock"
	case "Physical Touch":
		return "heart"
	default:
		return DefaultMetricIcon
	}
}
