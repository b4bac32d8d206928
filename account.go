package folio

// Position is a holding of a single security within an account.
type Position struct {
	Symbol string   `json:"symbol"`
	Shares Quantity `json:"shares"`
}

// Account is a named container of positions representing real holdings.
type Account struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Positions []Position `json:"positions"`
}

// AddShares records shares of a symbol in the account. A position for the
// same symbol is merged (its shares incremented) rather than duplicated.
func (a *Account) AddShares(symbol string, shares Quantity) {
	symbol = NormalizeSymbol(symbol)
	for i := range a.Positions {
		if a.Positions[i].Symbol == symbol {
			a.Positions[i].Shares = a.Positions[i].Shares.Add(shares)
			return
		}
	}
	a.Positions = append(a.Positions, Position{Symbol: symbol, Shares: shares})
}

// Shares returns the position size for a symbol, zero if not held.
func (a *Account) Shares(symbol string) Quantity {
	symbol = NormalizeSymbol(symbol)
	for _, p := range a.Positions {
		if p.Symbol == symbol {
			return p.Shares
		}
	}
	return Q(0)
}

// PriceMap maps a ticker symbol to its current price. Absence of a symbol
// implies price 0: valuations degrade to zero-value positions rather than
// failing.
type PriceMap map[string]Money

// Price returns the price for a symbol, zero (in the default currency) when
// unknown.
func (p PriceMap) Price(symbol string) Money {
	if m, ok := p[NormalizeSymbol(symbol)]; ok {
		return m
	}
	return M(0, DefaultCurrency)
}

// Set records a price for a symbol.
func (p PriceMap) Set(symbol string, price Money) {
	p[NormalizeSymbol(symbol)] = price
}

// symbolValue returns the aggregate dollar value of a symbol across all
// accounts.
func symbolValue(symbol string, accounts []Account, prices PriceMap) Money {
	total := Q(0)
	for i := range accounts {
		total = total.Add(accounts[i].Shares(symbol))
	}
	return prices.Price(symbol).Mul(total)
}
