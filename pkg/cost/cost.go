// Package cost prices a selected solution: unit cost times units times the site cost factor.
package cost

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/evanterry/surveyor/pkg/models"
)

// NoCostLabel is displayed instead of an amount for unpriced solutions.
const NoCostLabel = "No Cost"

// ZeroAmount is the normalised override when the entered value cannot be read.
const ZeroAmount = "$0.00"

// ErrNegativeUnits is returned for a negative unit count.
var ErrNegativeUnits = errors.New("units must not be negative")

var overrideStrip = regexp.MustCompile(`[^0-9.]`)

// Quote is the priced result for one solution selection.
type Quote struct {
	// NoCost is set when the unit cost is zero (or below) or the unit type is n/a.
	// It takes precedence over Amount for display.
	NoCost bool

	// Amount is max(0, unit cost) * units * cost factor, rounded to cents.
	Amount decimal.Decimal

	UnitCost   decimal.Decimal
	Units      int
	CostFactor decimal.Decimal
}

// Display returns the sentinel label or the formatted amount.
func (q Quote) Display() string {
	if q.NoCost {
		return NoCostLabel
	}
	return FormatCurrency(q.Amount)
}

// Calculate prices units of s under costFactor. A non-positive cost factor counts as 1.
func Calculate(s models.Solution, units int, costFactor decimal.Decimal) (Quote, error) {
	if units < 0 {
		return Quote{}, ErrNegativeUnits
	}
	if !costFactor.IsPositive() {
		costFactor = decimal.NewFromInt(1)
	}

	unitCost := decimal.Max(decimal.Zero, s.UnitCostDecimal())
	amount := unitCost.
		Mul(decimal.NewFromInt(int64(units))).
		Mul(costFactor).
		RoundBank(2)

	return Quote{
		NoCost:     s.IsNoCost() || unitCost.IsZero(),
		Amount:     amount,
		UnitCost:   unitCost,
		Units:      units,
		CostFactor: costFactor,
	}, nil
}

// DefaultUnits is the initial unit count for a newly selected solution: 0 for n/a, else 1.
func DefaultUnits(s models.Solution) int {
	if s.IsNotApplicable() {
		return 0
	}
	return 1
}

// ParseUnits reads a user-entered unit count. Blank or non-numeric input falls back to
// DefaultUnits; negative counts are rejected.
func ParseUnits(text string, s models.Solution) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return DefaultUnits(s), nil
	}
	if n < 0 {
		return 0, ErrNegativeUnits
	}
	return n, nil
}

// ParseCostFactor reads a site cost factor, defaulting to 1 when absent, invalid or not positive.
func ParseCostFactor(text string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || !d.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return d
}

// FormatCurrency renders d as dollars with thousands separators and two decimals ("$1,234.50").
// Rounding is half-to-even.
func FormatCurrency(d decimal.Decimal) string {
	rounded := d.RoundBank(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	fixed := rounded.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = humanize.Comma(n)
	}
	return sign + "$" + whole + "." + frac
}

// NormalizeOverride turns a free-form override entry into a currency string with two
// decimals and no thousands separators ("1,234.5" becomes "$1234.50"). Everything except
// digits and '.' is dropped; unreadable input becomes $0.00.
func NormalizeOverride(input string) string {
	cleaned := overrideStrip.ReplaceAllString(input, "")
	cleaned = strings.TrimSuffix(cleaned, ".")
	if strings.HasPrefix(cleaned, ".") {
		cleaned = "0" + cleaned
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return ZeroAmount
	}
	return "$" + d.RoundBank(2).StringFixed(2)
}

// SubmissionAmount is the override when one was entered, otherwise the quote's display value.
func SubmissionAmount(q Quote, override string) string {
	if strings.TrimSpace(override) != "" {
		return NormalizeOverride(override)
	}
	return q.Display()
}
