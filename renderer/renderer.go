// Package renderer turns the engine's reports into markdown documents.
package renderer

import (
	"fmt"
	"strings"

	"github.com/mlep/folio"
)

// categoryName resolves a category id to its display name, the sentinel and
// unknown ids render as themselves.
func categoryName(id string, categories []folio.Category) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// categoryOrder lists category ids in declaration order, sentinel last.
func categoryOrder(categories []folio.Category) []string {
	ids := make([]string, 0, len(categories)+1)
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return append(ids, folio.Uncategorized)
}

// AllocationMarkdown renders the current allocation against the model, one
// row per category.
func AllocationMarkdown(snap folio.Snapshot) string {
	var b strings.Builder
	if snap.Model != "" {
		fmt.Fprintf(&b, "# Allocation vs %q\n\n", snap.Model)
	} else {
		fmt.Fprint(&b, "# Allocation\n\n")
	}
	fmt.Fprintf(&b, "Total portfolio value: %s\n\n", snap.TotalValue)

	if snap.Deviations != nil {
		fmt.Fprintln(&b, "| Category | Current | Target | Deviation |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|")
		for _, id := range categoryOrder(snap.Categories) {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				categoryName(id, snap.Categories),
				snap.Allocation[id],
				snap.Target[id],
				snap.Deviations[id].SignedString(),
			)
		}
	} else {
		fmt.Fprintln(&b, "| Category | Current |")
		fmt.Fprintln(&b, "|:---|---:|")
		for _, id := range categoryOrder(snap.Categories) {
			fmt.Fprintf(&b, "| %s | %s |\n", categoryName(id, snap.Categories), snap.Allocation[id])
		}
	}
	return b.String()
}

// SuggestionsMarkdown renders sell-buy suggestions, sells first.
func SuggestionsMarkdown(snap folio.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Rebalancing vs %q\n\n", snap.Model)
	if len(snap.Suggestions) == 0 {
		fmt.Fprintln(&b, "Nothing to do: every category is within the threshold.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Action | Symbol | Category | Shares | Value | Current | Target | Deviation |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|---:|")
	for _, s := range snap.Suggestions {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s | %s | %s |\n",
			strings.ToUpper(string(s.Action)),
			s.Symbol,
			categoryName(s.Category, snap.Categories),
			s.Shares,
			s.Value,
			s.Current,
			s.Target,
			s.Deviation.SignedString(),
		)
	}
	return b.String()
}

// InvestMarkdown renders a buy-only plan: the purchases, the unspent
// remainder and the projected allocation.
func InvestMarkdown(amount folio.Money, plan folio.BuyOnlyPlan, categories []folio.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Investing %s\n\n", amount)
	if len(plan.Suggestions) == 0 {
		fmt.Fprintln(&b, "No underweight category can absorb new cash.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Symbol | Category | Shares | Value | Of New Cash | Current | Target | Projected |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|")
	for _, s := range plan.Suggestions {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s | %s | %s |\n",
			s.Symbol,
			categoryName(s.Category, categories),
			s.Shares,
			s.Value,
			s.AllocationPercent,
			s.Current,
			s.Target,
			s.Projected,
		)
	}
	fmt.Fprintf(&b, "\nUnspent: %s\n", plan.Unspent)

	if plan.Projection != nil {
		fmt.Fprintf(&b, "\n## Projected allocation (total %s)\n\n", plan.Projection.TotalValue)
		fmt.Fprintln(&b, "| Category | Projected | Deviation |")
		fmt.Fprintln(&b, "|:---|---:|---:|")
		for _, id := range categoryOrder(categories) {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				categoryName(id, categories),
				plan.Projection.Allocation[id],
				plan.Projection.Deviations[id].SignedString(),
			)
		}
	}
	return b.String()
}

// WhatIfMarkdown renders the simulated trades and the resulting allocation.
func WhatIfMarkdown(trades []folio.Trade, result folio.WhatIf, categories []folio.Category) string {
	var b strings.Builder
	fmt.Fprint(&b, "# What-if simulation\n\n")
	for _, t := range trades {
		fmt.Fprintf(&b, "- %s %s on %s\n", t.Action, t.Amount, categoryName(t.Category, categories))
	}
	fmt.Fprintf(&b, "\nProjected total value: %s\n\n", result.TotalValue)
	fmt.Fprintln(&b, "| Category | Allocation | Deviation |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, id := range categoryOrder(categories) {
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			categoryName(id, categories),
			result.Allocation[id],
			result.Deviations[id].SignedString(),
		)
	}
	return b.String()
}

// ModelsMarkdown renders every model portfolio and its target lines.
func ModelsMarkdown(models []folio.ModelPortfolio) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Model portfolios\n\n")
	if len(models) == 0 {
		fmt.Fprintln(&b, "No model portfolio defined yet.")
		return b.String()
	}
	for _, m := range models {
		fmt.Fprintf(&b, "## %s (updated %s)\n\n", m.Name, m.Updated)
		fmt.Fprintln(&b, "| Symbol | Target |")
		fmt.Fprintln(&b, "|:---|---:|")
		for _, s := range m.Stocks {
			fmt.Fprintf(&b, "| %s | %s |\n", s.Symbol, s.Target)
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}
