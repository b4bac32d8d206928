package folio

// Trade is a hypothetical category-level buy or sell. It is ephemeral and
// never persisted as portfolio state.
type Trade struct {
	Category string `json:"category"`
	Action   Action `json:"action"`
	Amount   Money  `json:"amount"`
}

// WhatIf is the projected portfolio after simulated trades.
type WhatIf struct {
	Allocation AllocationMap `json:"allocation"`
	Deviations DeviationMap  `json:"deviations"`
	TotalValue Money         `json:"projectedTotalValue"`
}

// Simulate applies hypothetical trades to the current allocation and
// recomputes percentages and deviations without touching real holdings. A
// sell larger than a category's current value zeroes the category and
// removes only the held amount from the running total, never going
// negative. Fully re-derivable from the trade list and the before snapshot.
func Simulate(trades []Trade, current AllocationMap, total Money, model AllocationMap, categories []Category) WhatIf {
	values := make(map[string]Money, len(categories)+1)
	running := total
	for _, id := range categoryIDs(categories) {
		values[id] = total.ByPercent(current[id]).Round()
	}
	for _, t := range trades {
		if !t.Amount.IsPositive() {
			continue
		}
		id := t.Category
		if !hasCategory(categories, id) && id != Uncategorized {
			continue
		}
		switch t.Action {
		case Buy:
			values[id] = values[id].Add(t.Amount)
			running = running.Add(t.Amount)
		case Sell:
			sold := t.Amount.Min(values[id])
			values[id] = values[id].Sub(sold)
			running = running.Sub(sold)
		}
	}
	result := WhatIf{
		Allocation: make(AllocationMap, len(values)),
		Deviations: make(DeviationMap, len(values)),
		TotalValue: running,
	}
	for _, id := range categoryIDs(categories) {
		result.Allocation[id] = values[id].PercentOf(running)
		result.Deviations[id] = result.Allocation[id] - model[id]
	}
	return result
}
