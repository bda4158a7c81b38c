package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/evanterry/surveyor/pkg/jsonutil"
)

// UnitTypeNotApplicable marks solutions that are not priced per unit.
const UnitTypeNotApplicable = "n/a"

// Solution is a remediation option for a barrier.
type Solution struct {
	ID          string  `json:"UNID"`
	Code        string  `json:"SolutionCode"`
	Description string  `json:"Solution"`
	Subtitle    *string `json:"SubTitle,omitempty"`
	UnitCost    string  `json:"UnitCost"`
	UnitType    string  `json:"UnitType"`
}

// UnmarshalJSON decodes a solution, turning an empty subtitle into an absent one and
// accepting numeric unit costs.
func (s *Solution) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string                  `json:"UNID"`
		Code        string                  `json:"SolutionCode"`
		Description string                  `json:"Solution"`
		Subtitle    *string                 `json:"SubTitle"`
		UnitCost    jsonutil.FlexibleString `json:"UnitCost"`
		UnitType    string                  `json:"UnitType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Solution{
		ID:          raw.ID,
		Code:        raw.Code,
		Description: raw.Description,
		UnitCost:    raw.UnitCost.String(),
		UnitType:    raw.UnitType,
	}
	if raw.Subtitle != nil && *raw.Subtitle != "" {
		s.Subtitle = raw.Subtitle
	}
	return nil
}

// UnitCostDecimal parses the unit cost; anything unparsable counts as zero.
func (s Solution) UnitCostDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s.UnitCost))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// UnitCostValue is UnitCostDecimal as a float, for display only.
func (s Solution) UnitCostValue() float64 {
	return s.UnitCostDecimal().InexactFloat64()
}

// IsNotApplicable reports a unit type of "n/a" (any case, surrounding space ignored).
func (s Solution) IsNotApplicable() bool {
	return strings.EqualFold(strings.TrimSpace(s.UnitType), UnitTypeNotApplicable)
}

// IsNoCost is true when the solution carries no priced amount.
func (s Solution) IsNoCost() bool {
	return s.UnitCostDecimal().IsZero() || s.IsNotApplicable()
}

// DisplayTitle is the description followed by the subtitle, when present.
func (s Solution) DisplayTitle() string {
	if s.Subtitle == nil {
		return s.Description
	}
	return s.Description + " - " + *s.Subtitle
}
