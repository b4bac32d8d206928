package folio

// rebalanceThreshold is the noise floor: categories whose absolute
// deviation is below this many percentage points are left alone.
const rebalanceThreshold Percent = 0.5

// Action qualifies a suggestion as a purchase or a disposal.
type Action string

const (
	Buy  Action = "buy"
	Sell Action = "sell"
)

// Suggestion is one concrete share-level trade proposed by a rebalancer.
type Suggestion struct {
	Symbol    string  `json:"symbol"`
	Category  string  `json:"category"`
	Action    Action  `json:"action"`
	Shares    int64   `json:"shares"`
	Value     Money   `json:"value"`
	Current   Percent `json:"currentPercentage"`
	Target    Percent `json:"targetPercentage"`
	Deviation Percent `json:"deviation"`
	// Buy-only extras: share of the new money, and the post-purchase view.
	AllocationPercent  Percent `json:"allocationPercent,omitempty"`
	Projected          Percent `json:"projectedPercentage,omitempty"`
	ProjectedDeviation Percent `json:"projectedDeviation,omitempty"`
}

// heldSymbols returns the distinct symbols held across accounts whose mapped
// category is id, in first-encounter order over accounts and positions.
func heldSymbols(id string, accounts []Account, mapping StockCategoryMap, categories []Category) []string {
	var symbols []string
	seen := make(map[string]struct{})
	for _, account := range accounts {
		for _, pos := range account.Positions {
			if mapping.CategoryOf(pos.Symbol, categories) != id {
				continue
			}
			if _, ok := seen[pos.Symbol]; ok {
				continue
			}
			seen[pos.Symbol] = struct{}{}
			symbols = append(symbols, pos.Symbol)
		}
	}
	return symbols
}

// smallestHolding returns the held symbol in the category with the smallest
// aggregate value across accounts. Ties keep the first encountered.
func smallestHolding(id string, accounts []Account, mapping StockCategoryMap, prices PriceMap, categories []Category) (string, bool) {
	var best string
	var bestValue Money
	for _, symbol := range heldSymbols(id, accounts, mapping, categories) {
		value := symbolValue(symbol, accounts, prices)
		if best == "" || value.LessThan(bestValue) {
			best, bestValue = symbol, value
		}
	}
	return best, best != ""
}

// largestHolding returns the held symbol in the category with the largest
// aggregate value across accounts. Ties keep the first encountered.
func largestHolding(id string, accounts []Account, mapping StockCategoryMap, prices PriceMap, categories []Category) (string, bool) {
	var best string
	var bestValue Money
	for _, symbol := range heldSymbols(id, accounts, mapping, categories) {
		value := symbolValue(symbol, accounts, prices)
		if best == "" || value.GreaterThan(bestValue) {
			best, bestValue = symbol, value
		}
	}
	return best, best != ""
}

// topModelStock returns the model stock mapped to the category with the
// highest target percentage.
func topModelStock(id string, model ModelPortfolio, mapping StockCategoryMap, categories []Category) (string, bool) {
	var best string
	var bestTarget Percent
	for _, s := range model.Stocks {
		if mapping.CategoryOf(s.Symbol, categories) != id {
			continue
		}
		if best == "" || s.Target > bestTarget {
			best, bestTarget = NormalizeSymbol(s.Symbol), s.Target
		}
	}
	return best, best != ""
}

// SuggestSellBuy proposes sells for overweight categories and buys for
// underweight ones, realigning existing capital toward the model. Sells trim
// the smallest position in the category, buys reinforce the largest (or the
// model's top pick when the category is empty). All sells come before any
// buy, each group in category declaration order. A zero-value portfolio
// yields no suggestions.
func SuggestSellBuy(deviations DeviationMap, categories []Category, accounts []Account, mapping StockCategoryMap, prices PriceMap, model ModelPortfolio, total Money) []Suggestion {
	if !total.IsPositive() {
		return nil
	}
	target := ModelAllocation(model, mapping, categories)
	var suggestions []Suggestion

	emit := func(id, symbol string, action Action, amount Money) {
		price := prices.Price(symbol)
		shares := amount.WholeShares(price)
		if !shares.IsPositive() {
			return
		}
		suggestions = append(suggestions, Suggestion{
			Symbol:    symbol,
			Category:  id,
			Action:    action,
			Shares:    shares.Int64(),
			Value:     price.Mul(shares),
			Current:   target[id] + deviations[id],
			Target:    target[id],
			Deviation: deviations[id],
		})
	}

	for _, id := range categoryIDs(categories) {
		dev := deviations[id]
		if dev < rebalanceThreshold {
			continue
		}
		symbol, ok := smallestHolding(id, accounts, mapping, prices, categories)
		if !ok {
			continue
		}
		emit(id, symbol, Sell, total.ByPercent(dev))
	}
	for _, id := range categoryIDs(categories) {
		dev := deviations[id]
		if dev > -rebalanceThreshold {
			continue
		}
		symbol, ok := largestHolding(id, accounts, mapping, prices, categories)
		if !ok {
			symbol, ok = topModelStock(id, model, mapping, categories)
		}
		if !ok {
			continue
		}
		emit(id, symbol, Buy, total.ByPercent(dev.Abs()))
	}
	return suggestions
}
