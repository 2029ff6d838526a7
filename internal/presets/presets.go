// Package presets carries the static catalogue of popular services used to
// prefill new subscriptions.
package presets

import (
	"strings"

	"github.com/wessmexura1/subscription-calculator/internal/subscription"
)

// Preset describes one popular service with its default pricing.
type Preset struct {
	Name          string                            `json:"name"`
	Category      subscription.Category             `json:"category"`
	Price         float64                           `json:"defaultPrice"`
	Currency      string                            `json:"defaultCurrency"`
	BillingPeriod subscription.BillingPeriod        `json:"defaultBillingPeriod"`
	LogoURL       string                            `json:"logoUrl,omitempty"`
	Plans         []subscription.PlanType           `json:"availablePlans"`
	PlanPrices    map[subscription.PlanType]float64 `json:"planPrices,omitempty"`
}

var catalogue = []Preset{
	// Video
	{
		Name:          "Netflix",
		Category:      subscription.CategoryVideo,
		Price:         999,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/netflix.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
		PlanPrices:    map[subscription.PlanType]float64{subscription.PlanIndividual: 999, subscription.PlanFamily: 1499},
	},
	{
		Name:          "YouTube Premium",
		Category:      subscription.CategoryVideo,
		Price:         299,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/youtube.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily, subscription.PlanStudent},
		PlanPrices:    map[subscription.PlanType]float64{subscription.PlanIndividual: 299, subscription.PlanFamily: 549, subscription.PlanStudent: 169},
	},
	{
		Name:          "Disney+",
		Category:      subscription.CategoryVideo,
		Price:         899,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/disneyplus.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
		PlanPrices:    map[subscription.PlanType]float64{subscription.PlanIndividual: 899, subscription.PlanFamily: 1299},
	},
	{
		Name:          "Кинопоиск",
		Category:      subscription.CategoryVideo,
		Price:         299,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/kinopoisk.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
		PlanPrices:    map[subscription.PlanType]float64{subscription.PlanIndividual: 299, subscription.PlanFamily: 549},
	},
	{
		Name:          "Иви",
		Category:      subscription.CategoryVideo,
		Price:         399,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
	},
	{
		Name:          "Okko",
		Category:      subscription.CategoryVideo,
		Price:         399,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
	},

	// Music
	{
		Name:          "Spotify",
		Category:      subscription.CategoryMusic,
		Price:         299,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/spotify.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily, subscription.PlanStudent},
		PlanPrices:    map[subscription.PlanType]float64{subscription.PlanIndividual: 299, subscription.PlanFamily: 449, subscription.PlanStudent: 149},
	},
	{
		Name:          "Apple Music",
		Category:      subscription.CategoryMusic,
		Price:         299,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/applemusic.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily, subscription.PlanStudent},
		PlanPrices:    map[subscription.PlanType]float64{subscription.PlanIndividual: 299, subscription.PlanFamily: 449, subscription.PlanStudent: 149},
	},
	{
		Name:          "Яндекс Музыка",
		Category:      subscription.CategoryMusic,
		Price:         299,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
		PlanPrices:    map[subscription.PlanType]float64{subscription.PlanIndividual: 299, subscription.PlanFamily: 449},
	},
	{
		Name:          "VK Музыка",
		Category:      subscription.CategoryMusic,
		Price:         199,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/vk.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
	},

	// Games
	{
		Name:          "Xbox Game Pass",
		Category:      subscription.CategoryGames,
		Price:         999,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/xbox.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual},
		PlanPrices:    map[subscription.PlanType]float64{subscription.PlanIndividual: 999},
	},
	{
		Name:          "PlayStation Plus",
		Category:      subscription.CategoryGames,
		Price:         4799,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingYearly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/playstation.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual},
	},
	{
		Name:          "EA Play",
		Category:      subscription.CategoryGames,
		Price:         499,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/ea.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual},
	},
	{
		Name:          "Nintendo Switch Online",
		Category:      subscription.CategoryGames,
		Price:         1499,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingYearly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/nintendoswitch.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
	},

	// Software
	{
		Name:          "Adobe Creative Cloud",
		Category:      subscription.CategorySoftware,
		Price:         3999,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/adobe.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanBusiness, subscription.PlanStudent},
	},
	{
		Name:          "GitHub Copilot",
		Category:      subscription.CategorySoftware,
		Price:         10,
		Currency:      "USD",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/github.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanBusiness},
	},
	{
		Name:          "Notion",
		Category:      subscription.CategorySoftware,
		Price:         10,
		Currency:      "USD",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/notion.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanBusiness},
	},
	{
		Name:          "Figma",
		Category:      subscription.CategorySoftware,
		Price:         15,
		Currency:      "USD",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/figma.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanBusiness},
	},
	{
		Name:          "Microsoft 365",
		Category:      subscription.CategorySoftware,
		Price:         3499,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingYearly,
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
	},
	{
		Name:          "JetBrains All Products",
		Category:      subscription.CategorySoftware,
		Price:         289,
		Currency:      "USD",
		BillingPeriod: subscription.BillingYearly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/jetbrains.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanBusiness},
	},
	{
		Name:          "ChatGPT Plus",
		Category:      subscription.CategorySoftware,
		Price:         20,
		Currency:      "USD",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/openai.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual},
	},

	// Cloud
	{
		Name:          "iCloud+",
		Category:      subscription.CategoryCloud,
		Price:         99,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/icloud.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
	},
	{
		Name:          "Google One",
		Category:      subscription.CategoryCloud,
		Price:         139,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/google.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
	},
	{
		Name:          "Dropbox",
		Category:      subscription.CategoryCloud,
		Price:         11.99,
		Currency:      "USD",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/dropbox.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily, subscription.PlanBusiness},
	},
	{
		Name:          "Яндекс Диск",
		Category:      subscription.CategoryCloud,
		Price:         99,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		Plans:         []subscription.PlanType{subscription.PlanIndividual},
	},

	// VPN
	{
		Name:          "NordVPN",
		Category:      subscription.CategoryVPN,
		Price:         4.99,
		Currency:      "USD",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/nordvpn.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual},
	},
	{
		Name:          "ExpressVPN",
		Category:      subscription.CategoryVPN,
		Price:         12.95,
		Currency:      "USD",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/expressvpn.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual},
	},
	{
		Name:          "Surfshark",
		Category:      subscription.CategoryVPN,
		Price:         2.49,
		Currency:      "USD",
		BillingPeriod: subscription.BillingMonthly,
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
	},

	// Education
	{
		Name:          "Coursera Plus",
		Category:      subscription.CategoryEducation,
		Price:         59,
		Currency:      "USD",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/coursera.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual},
	},
	{
		Name:          "Skillbox",
		Category:      subscription.CategoryEducation,
		Price:         4500,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		Plans:         []subscription.PlanType{subscription.PlanIndividual},
	},
	{
		Name:          "Udemy",
		Category:      subscription.CategoryEducation,
		Price:         20,
		Currency:      "USD",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/udemy.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual},
	},
	{
		Name:          "Duolingo Plus",
		Category:      subscription.CategoryEducation,
		Price:         6.99,
		Currency:      "USD",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/duolingo.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
	},

	// Fitness
	{
		Name:          "World Class",
		Category:      subscription.CategoryFitness,
		Price:         12000,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		Plans:         []subscription.PlanType{subscription.PlanIndividual, subscription.PlanFamily},
	},
	{
		Name:          "DDX Fitness",
		Category:      subscription.CategoryFitness,
		Price:         2990,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		Plans:         []subscription.PlanType{subscription.PlanIndividual},
	},
	{
		Name:          "Strava Premium",
		Category:      subscription.CategoryFitness,
		Price:         5,
		Currency:      "USD",
		BillingPeriod: subscription.BillingMonthly,
		LogoURL:       "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons/icons/strava.svg",
		Plans:         []subscription.PlanType{subscription.PlanIndividual},
	},
}

// All returns the full catalogue.
func All() []Preset {
	out := make([]Preset, len(catalogue))
	copy(out, catalogue)
	return out
}

// ByName finds a preset by name, case-insensitively.
func ByName(name string) (Preset, bool) {
	for _, p := range catalogue {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// ByCategory returns the presets in the given category.
func ByCategory(category subscription.Category) []Preset {
	var out []Preset
	for _, p := range catalogue {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Input builds a subscription input from the preset for the given plan. A
// plan with its own price overrides the default; unknown plans keep the
// default price and fall back to the individual plan type.
func (p Preset) Input(plan subscription.PlanType) subscription.Input {
	price := p.Price
	if planPrice, ok := p.PlanPrices[plan]; ok {
		price = planPrice
	}
	if !plan.Valid() {
		plan = subscription.PlanIndividual
	}
	return subscription.Input{
		Name:          p.Name,
		Category:      p.Category,
		Price:         price,
		Currency:      p.Currency,
		BillingPeriod: p.BillingPeriod,
		PlanType:      plan,
		HoursPerWeek:  0,
		Importance:    5,
		LogoURL:       p.LogoURL,
		IsCustom:      false,
	}
}
