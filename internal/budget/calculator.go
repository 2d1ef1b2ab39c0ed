package budget

import (
	"fmt"
	"strconv"
	"strings"
)

// CategoryInput is one free-form line of the calculator: a fixed category
// name and whatever the user typed for the amount.
type CategoryInput struct {
	Name   string
	Amount string
}

// Calculator is the free-form budget tool. All fields hold raw text; parsing
// happens on read so a half-typed number never breaks the running total.
type Calculator struct {
	TotalBudget string
	Categories  []CategoryInput
}

// NewCalculator creates a calculator with the given category names.
func NewCalculator(categories []string) *Calculator {
	inputs := make([]CategoryInput, len(categories))
	for i, name := range categories {
		inputs[i] = CategoryInput{Name: name}
	}
	return &Calculator{Categories: inputs}
}

// SetAmount updates one category's raw amount text.
func (c *Calculator) SetAmount(index int, amount string) {
	if index < 0 || index >= len(c.Categories) {
		return
	}
	c.Categories[index].Amount = amount
}

// parseAmount treats anything that does not parse as zero.
func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// Total sums the parsed category amounts.
func (c *Calculator) Total() float64 {
	var total float64
	for _, cat := range c.Categories {
		total += parseAmount(cat.Amount)
	}
	return total
}

// Budget returns the parsed declared total budget.
func (c *Calculator) Budget() float64 {
	return parseAmount(c.TotalBudget)
}

// Remaining returns budget minus spend; negative when overspent.
func (c *Calculator) Remaining() float64 {
	return c.Budget() - c.Total()
}

// OverBudget reports whether the running total exceeds the declared budget.
func (c *Calculator) OverBudget() bool {
	return c.Total() > c.Budget()
}

// Overage returns the amount over budget, zero when within it.
func (c *Calculator) Overage() float64 {
	if !c.OverBudget() {
		return 0
	}
	return c.Total() - c.Budget()
}

// FormatAmount renders a euro amount with two decimals, the way every
// overage and remainder is displayed.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f€", v)
}
