package folio

import "sort"

// BuyOnlyProjection is the portfolio-wide view after the suggested
// purchases have been applied.
type BuyOnlyProjection struct {
	Allocation AllocationMap `json:"categoryAllocation"`
	Deviations DeviationMap  `json:"deviations"`
	TotalValue Money         `json:"totalValue"`
}

// BuyOnlyPlan is the output of the buy-only rebalancer: the suggested
// purchases, the projected portfolio, and the cash that could not be spent
// on whole shares.
type BuyOnlyPlan struct {
	Suggestions []Suggestion       `json:"suggestions"`
	Projection  *BuyOnlyProjection `json:"projections,omitempty"`
	Unspent     Money              `json:"unspent"`
}

// buyCandidate is a model stock eligible to receive new cash.
type buyCandidate struct {
	symbol    string
	category  string
	price     Money
	held      Money
	current   Percent
	target    Percent
	shortfall Money
	shares    Quantity
	spent     Money
}

// SuggestBuyOnly allocates a fixed amount of new cash across underweight
// categories proportionally to their shortfall, and within each category
// across underweight model stocks, never selling. Whole-share rounding
// remainders are redistributed to the most underweight candidates; what
// still cannot buy a whole share is reported as unspent.
func SuggestBuyOnly(amount Money, model ModelPortfolio, accounts []Account, categories []Category, mapping StockCategoryMap, prices PriceMap) BuyOnlyPlan {
	return suggestBuyOnly(amount, model, accounts, categories, mapping, prices, nil)
}

// SuggestBuyOnlySelected recomputes a buy-only plan with some suggested
// trades deselected: symbols the unrestricted plan suggested but that are
// absent from the given set are dropped, and the cash they free is
// reallocated across the remaining candidates with the same
// proportional-shortfall method. Symbols the unrestricted plan never
// suggested are not deselections, so a category whose cash share could not
// buy a whole share keeps that share reserved, and passing every suggested
// symbol returns the unrestricted plan unchanged.
func SuggestBuyOnlySelected(amount Money, model ModelPortfolio, accounts []Account, categories []Category, mapping StockCategoryMap, prices PriceMap, symbols []string) BuyOnlyPlan {
	plan := suggestBuyOnly(amount, model, accounts, categories, mapping, prices, nil)
	selected := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		selected[NormalizeSymbol(s)] = struct{}{}
	}
	deselected := make(map[string]struct{})
	for _, g := range plan.Suggestions {
		if _, ok := selected[g.Symbol]; !ok {
			deselected[g.Symbol] = struct{}{}
		}
	}
	if len(deselected) == 0 {
		return plan
	}
	return suggestBuyOnly(amount, model, accounts, categories, mapping, prices, deselected)
}

func suggestBuyOnly(amount Money, model ModelPortfolio, accounts []Account, categories []Category, mapping StockCategoryMap, prices PriceMap, deselected map[string]struct{}) BuyOnlyPlan {
	plan := BuyOnlyPlan{Unspent: amount}
	if !amount.IsPositive() || len(model.Stocks) == 0 {
		return plan
	}
	model = model.Normalized()
	total := TotalValue(accounts, prices)
	current := Aggregate(accounts, mapping, prices, categories)
	target := ModelAllocation(model, mapping, categories)
	future := total.Add(amount)

	// Candidates are the model stocks with a known positive price, grouped
	// by category, most underweight first. Deselected symbols are not
	// candidates. A category participates only when it is underweight
	// beyond the threshold and has at least one candidate.
	candidates := make(map[string][]buyCandidate)
	shortfalls := make(map[string]Money)
	totalShortfall := USD(0)
	for _, id := range categoryIDs(categories) {
		if current[id]-target[id] > -rebalanceThreshold {
			continue
		}
		var cands []buyCandidate
		for _, s := range model.Stocks {
			symbol := NormalizeSymbol(s.Symbol)
			if mapping.CategoryOf(symbol, categories) != id {
				continue
			}
			if _, out := deselected[symbol]; out {
				continue
			}
			price := prices.Price(symbol)
			if !price.IsPositive() {
				continue
			}
			held := symbolValue(symbol, accounts, prices)
			shortfall := future.ByPercent(s.Target).Sub(held)
			if !shortfall.IsPositive() {
				continue
			}
			cands = append(cands, buyCandidate{
				symbol:    symbol,
				category:  id,
				price:     price,
				held:      held,
				current:   held.PercentOf(total),
				target:    s.Target,
				shortfall: shortfall,
			})
		}
		if len(cands) == 0 {
			continue
		}
		sort.SliceStable(cands, func(i, j int) bool {
			return cands[i].current-cands[i].target < cands[j].current-cands[j].target
		})
		shortfall := future.ByPercent(target[id]).Sub(total.ByPercent(current[id]))
		if !shortfall.IsPositive() {
			continue
		}
		candidates[id] = cands
		shortfalls[id] = shortfall
		totalShortfall = totalShortfall.Add(shortfall)
	}
	if !totalShortfall.IsPositive() {
		return plan
	}

	spent := USD(0)
	for _, id := range categoryIDs(categories) {
		cands, ok := candidates[id]
		if !ok {
			continue
		}
		share := amount.Portion(shortfalls[id], totalShortfall)
		remaining := share
		for i := range cands {
			c := &cands[i]
			grant := share.Portion(c.shortfall, shortfalls[id]).Min(c.shortfall).Min(remaining)
			shares := grant.WholeShares(c.price)
			if !shares.IsPositive() {
				continue
			}
			cost := c.price.Mul(shares)
			c.shares = c.shares.Add(shares)
			c.spent = c.spent.Add(cost)
			remaining = remaining.Sub(cost)
		}
		// One extra whole-share grant per candidate bounds the loop.
		for range cands {
			if !remaining.IsPositive() {
				break
			}
			granted := false
			for i := range cands {
				c := &cands[i]
				shares := remaining.WholeShares(c.price)
				if !shares.IsPositive() {
					continue
				}
				cost := c.price.Mul(shares)
				c.shares = c.shares.Add(shares)
				c.spent = c.spent.Add(cost)
				remaining = remaining.Sub(cost)
				granted = true
				break
			}
			if !granted {
				break
			}
		}
		for _, c := range cands {
			if !c.shares.IsPositive() {
				continue
			}
			spent = spent.Add(c.spent)
			plan.Suggestions = append(plan.Suggestions, Suggestion{
				Symbol:            c.symbol,
				Category:          c.category,
				Action:            Buy,
				Shares:            c.shares.Int64(),
				Value:             c.spent,
				Current:           c.current,
				Target:            c.target,
				Deviation:         c.current - c.target,
				AllocationPercent: c.spent.PercentOf(amount),
			})
		}
	}
	plan.Unspent = amount.Sub(spent)
	if len(plan.Suggestions) == 0 {
		return plan
	}

	// Projection: re-aggregate over the existing holdings plus the
	// purchased shares held in a synthetic account.
	projected := make([]Account, len(accounts), len(accounts)+1)
	copy(projected, accounts)
	var purchases Account
	for _, s := range plan.Suggestions {
		purchases.AddShares(s.Symbol, Q(s.Shares))
	}
	projected = append(projected, purchases)
	projTotal := TotalValue(projected, prices)
	projAlloc := Aggregate(projected, mapping, prices, categories)
	plan.Projection = &BuyOnlyProjection{
		Allocation: projAlloc,
		Deviations: Deviate(model, projAlloc, mapping, categories),
		TotalValue: projTotal,
	}
	for i := range plan.Suggestions {
		s := &plan.Suggestions[i]
		held := symbolValue(s.Symbol, accounts, prices).Add(s.Value)
		s.Projected = held.PercentOf(projTotal)
		s.ProjectedDeviation = s.Projected - s.Target
	}
	return plan
}
