package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/wessmexura1/subscription-calculator/internal/subscription"
)

// encoding/json rejects IEEE infinities, so CostPerHour and ValueScore
// serialize as the string "Infinity" when unbounded. The representation is
// lossless: UnmarshalJSON restores math.Inf(1).
func (m Metrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		MonthlyCost    float64                     `json:"monthlyCost"`
		YearlyCost     float64                     `json:"yearlyCost"`
		HoursPerMonth  float64                     `json:"hoursPerMonth"`
		CostPerHour    json.RawMessage             `json:"costPerHour"`
		ValueScore     json.RawMessage             `json:"valueScore"`
		Recommendation subscription.Recommendation `json:"recommendation"`
	}{
		MonthlyCost:    m.MonthlyCost,
		YearlyCost:     m.YearlyCost,
		HoursPerMonth:  m.HoursPerMonth,
		CostPerHour:    encodeUnbounded(m.CostPerHour),
		ValueScore:     encodeUnbounded(m.ValueScore),
		Recommendation: m.Recommendation,
	})
}

// UnmarshalJSON accepts both numeric values and the "Infinity" sentinel for
// the unbounded fields.
func (m *Metrics) UnmarshalJSON(data []byte) error {
	var raw struct {
		MonthlyCost    float64                     `json:"monthlyCost"`
		YearlyCost     float64                     `json:"yearlyCost"`
		HoursPerMonth  float64                     `json:"hoursPerMonth"`
		CostPerHour    json.RawMessage             `json:"costPerHour"`
		ValueScore     json.RawMessage             `json:"valueScore"`
		Recommendation subscription.Recommendation `json:"recommendation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	costPerHour, err := decodeUnbounded(raw.CostPerHour)
	if err != nil {
		return fmt.Errorf("costPerHour: %w", err)
	}
	valueScore, err := decodeUnbounded(raw.ValueScore)
	if err != nil {
		return fmt.Errorf("valueScore: %w", err)
	}

	m.MonthlyCost = raw.MonthlyCost
	m.YearlyCost = raw.YearlyCost
	m.HoursPerMonth = raw.HoursPerMonth
	m.CostPerHour = costPerHour
	m.ValueScore = valueScore
	m.Recommendation = raw.Recommendation
	return nil
}

var infinityToken = []byte(`"Infinity"`)

func encodeUnbounded(val float64) json.RawMessage {
	if math.IsInf(val, 1) {
		return infinityToken
	}
	return json.RawMessage(fmt.Sprintf("%g", val))
}

func decodeUnbounded(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	if bytes.Equal(raw, infinityToken) {
		return math.Inf(1), nil
	}
	var val float64
	if err := json.Unmarshal(raw, &val); err != nil {
		return 0, err
	}
	return val, nil
}
