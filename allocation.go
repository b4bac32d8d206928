package folio

// AllocationMap holds, per category ID, the share of portfolio value
// held in that category.
type AllocationMap map[string]Percent

// DeviationMap holds, per category ID, current minus target percentage.
type DeviationMap map[string]Percent

// categoryValues computes the market value held in each category across
// all accounts, plus the portfolio total. Positions whose symbol has no
// mapping fall into the Uncategorized bucket.
func categoryValues(accounts []Account, mapping StockCategoryMap, prices PriceMap, categories []Category) (map[string]Money, Money) {
	values := make(map[string]Money, len(categories)+1)
	total := USD(0)
	for _, account := range accounts {
		for _, pos := range account.Positions {
			value := prices.Price(pos.Symbol).Mul(pos.Shares)
			id := mapping.CategoryOf(pos.Symbol, categories)
			values[id] = values[id].Add(value)
			total = total.Add(value)
		}
	}
	return values, total
}

// TotalValue returns the market value of all positions across accounts.
func TotalValue(accounts []Account, prices PriceMap) Money {
	total := USD(0)
	for _, account := range accounts {
		for _, pos := range account.Positions {
			total = total.Add(prices.Price(pos.Symbol).Mul(pos.Shares))
		}
	}
	return total
}

// Aggregate computes the current allocation: the percentage of total
// portfolio value invested in each category. Every declared category and
// the Uncategorized bucket are always present in the result, at 0 when
// nothing is held there. An empty portfolio yields all zeroes.
func Aggregate(accounts []Account, mapping StockCategoryMap, prices PriceMap, categories []Category) AllocationMap {
	values, total := categoryValues(accounts, mapping, prices, categories)
	allocation := make(AllocationMap, len(categories)+1)
	for _, id := range categoryIDs(categories) {
		allocation[id] = values[id].PercentOf(total)
	}
	return allocation
}

// ModelAllocation computes the target allocation per category implied by a
// model portfolio. The model is normalized first, so targets that do not
// sum to 100 are scaled rather than rejected. Model stocks with no category
// mapping contribute to the Uncategorized bucket.
func ModelAllocation(model ModelPortfolio, mapping StockCategoryMap, categories []Category) AllocationMap {
	model = model.Normalized()
	targets := make(AllocationMap, len(categories)+1)
	for _, s := range model.Stocks {
		id := mapping.CategoryOf(s.Symbol, categories)
		targets[id] += s.Target
	}
	allocation := make(AllocationMap, len(categories)+1)
	for _, id := range categoryIDs(categories) {
		allocation[id] = targets[id]
	}
	return allocation
}

// Deviate computes current minus target per category. Categories absent from
// one side count as zero there, so a category held but not modeled shows a
// positive deviation and vice versa.
func Deviate(model ModelPortfolio, current AllocationMap, mapping StockCategoryMap, categories []Category) DeviationMap {
	target := ModelAllocation(model, mapping, categories)
	deviation := make(DeviationMap, len(categories)+1)
	for _, id := range categoryIDs(categories) {
		deviation[id] = current[id] - target[id]
	}
	return deviation
}
