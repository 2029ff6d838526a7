// Package subscription defines the subscription record and its enumerations.
package subscription

import (
	"fmt"
	"time"

	"github.com/wessmexura1/subscription-calculator/pkg/exchange"
)

// Category classifies a subscription service.
type Category string

const (
	CategoryVideo     Category = "video"
	CategoryMusic     Category = "music"
	CategoryGames     Category = "games"
	CategorySoftware  Category = "software"
	CategoryCloud     Category = "cloud"
	CategoryVPN       Category = "vpn"
	CategoryEducation Category = "education"
	CategoryFitness   Category = "fitness"
	CategoryOther     Category = "other"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryVideo,
		CategoryMusic,
		CategoryGames,
		CategorySoftware,
		CategoryCloud,
		CategoryVPN,
		CategoryEducation,
		CategoryFitness,
		CategoryOther,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// BillingPeriod is the cycle a subscription price covers.
type BillingPeriod string

const (
	BillingMonthly   BillingPeriod = "monthly"
	BillingQuarterly BillingPeriod = "quarterly"
	BillingYearly    BillingPeriod = "yearly"
	BillingLifetime  BillingPeriod = "lifetime"
)

// BillingPeriods returns all billing periods in display order.
func BillingPeriods() []BillingPeriod {
	return []BillingPeriod{BillingMonthly, BillingQuarterly, BillingYearly, BillingLifetime}
}

// Valid reports whether p is a known billing period.
func (p BillingPeriod) Valid() bool {
	switch p {
	case BillingMonthly, BillingQuarterly, BillingYearly, BillingLifetime:
		return true
	}
	return false
}

// PlanType is informational only and never used in calculations.
type PlanType string

const (
	PlanIndividual PlanType = "individual"
	PlanFamily     PlanType = "family"
	PlanStudent    PlanType = "student"
	PlanBusiness   PlanType = "business"
)

// Valid reports whether t is a known plan type.
func (t PlanType) Valid() bool {
	switch t {
	case PlanIndividual, PlanFamily, PlanStudent, PlanBusiness:
		return true
	}
	return false
}

// Recommendation is the engine's verdict for a subscription.
type Recommendation string

const (
	RecommendKeep   Recommendation = "keep"
	RecommendReview Recommendation = "review"
	RecommendCancel Recommendation = "cancel"
)

// Valid reports whether r is a known recommendation.
func (r Recommendation) Valid() bool {
	switch r {
	case RecommendKeep, RecommendReview, RecommendCancel:
		return true
	}
	return false
}

// Subscription is one user-entered recurring service.
type Subscription struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Category        Category      `json:"category"`
	Price           float64       `json:"price"`
	Currency        string        `json:"currency"`
	BillingPeriod   BillingPeriod `json:"billingPeriod"`
	PlanType        PlanType      `json:"planType"`
	HoursPerWeek    float64       `json:"hoursPerWeek"`
	Importance      int           `json:"importance"`
	StartDate       string        `json:"startDate,omitempty"`
	NextPaymentDate string        `json:"nextPaymentDate,omitempty"`
	LogoURL         string        `json:"logoUrl,omitempty"`
	IsCustom        bool          `json:"isCustom"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// Input holds the user-editable fields of a subscription.
type Input struct {
	Name          string        `json:"name"`
	Category      Category      `json:"category"`
	Price         float64       `json:"price"`
	Currency      string        `json:"currency"`
	BillingPeriod BillingPeriod `json:"billingPeriod"`
	PlanType      PlanType      `json:"planType"`
	HoursPerWeek  float64       `json:"hoursPerWeek"`
	Importance    int           `json:"importance"`
	StartDate     string        `json:"startDate,omitempty"`
	LogoURL       string        `json:"logoUrl,omitempty"`
	IsCustom      bool          `json:"isCustom"`
}

// Validate checks the user-supplied ranges. The metrics engine itself does
// not re-validate; out-of-range records degrade numerically instead of
// crashing there.
func (in Input) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if !in.Category.Valid() {
		return fmt.Errorf("unknown category %q", in.Category)
	}
	if in.Price < 0 {
		return fmt.Errorf("price must be non-negative, got %v", in.Price)
	}
	if !exchange.Supported(in.Currency) {
		return fmt.Errorf("unknown currency %q", in.Currency)
	}
	if !in.BillingPeriod.Valid() {
		return fmt.Errorf("unknown billing period %q", in.BillingPeriod)
	}
	if !in.PlanType.Valid() {
		return fmt.Errorf("unknown plan type %q", in.PlanType)
	}
	if in.HoursPerWeek < 0 {
		return fmt.Errorf("hoursPerWeek must be non-negative, got %v", in.HoursPerWeek)
	}
	if in.Importance < 1 || in.Importance > 10 {
		return fmt.Errorf("importance must be between 1 and 10, got %d", in.Importance)
	}
	if in.StartDate != "" {
		if _, err := time.Parse(DateLayout, in.StartDate); err != nil {
			return fmt.Errorf("invalid startDate: %w", err)
		}
	}
	return nil
}

// New builds a Subscription from in with the given id and creation time. The
// next payment date is derived from the start date when one is set.
func New(in Input, id string, now time.Time) Subscription {
	sub := Subscription{
		ID:            id,
		Name:          in.Name,
		Category:      in.Category,
		Price:         in.Price,
		Currency:      in.Currency,
		BillingPeriod: in.BillingPeriod,
		PlanType:      in.PlanType,
		HoursPerWeek:  in.HoursPerWeek,
		Importance:    in.Importance,
		StartDate:     in.StartDate,
		LogoURL:       in.LogoURL,
		IsCustom:      in.IsCustom,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	sub.NextPaymentDate = NextPaymentDate(sub.StartDate, sub.BillingPeriod, now)
	return sub
}

// Apply overwrites the editable fields of sub with in, refreshing the update
// timestamp and the derived payment date. Identity and creation time are kept.
func (sub *Subscription) Apply(in Input, now time.Time) {
	sub.Name = in.Name
	sub.Category = in.Category
	sub.Price = in.Price
	sub.Currency = in.Currency
	sub.BillingPeriod = in.BillingPeriod
	sub.PlanType = in.PlanType
	sub.HoursPerWeek = in.HoursPerWeek
	sub.Importance = in.Importance
	sub.StartDate = in.StartDate
	sub.LogoURL = in.LogoURL
	sub.IsCustom = in.IsCustom
	sub.UpdatedAt = now
	sub.NextPaymentDate = NextPaymentDate(sub.StartDate, sub.BillingPeriod, now)
}
