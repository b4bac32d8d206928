package folio

import (
	"fmt"

	"github.com/mlep/folio/date"
)

// ModelStock is a single target line of a model portfolio.
type ModelStock struct {
	Symbol string  `json:"symbol"`
	Target Percent `json:"targetPercentage"`
}

// ModelPortfolio is a named target allocation expressed as
// symbol to target-percentage pairs. Its name is its identifier.
type ModelPortfolio struct {
	Name    string       `json:"name"`
	Stocks  []ModelStock `json:"stocks"`
	Created date.Date    `json:"createdAt"`
	Updated date.Date    `json:"updatedAt"`
}

// TargetSum returns the sum of all target percentages.
func (m ModelPortfolio) TargetSum() Percent {
	var sum Percent
	for _, s := range m.Stocks {
		sum += s.Target
	}
	return sum
}

// Validate checks the editing-time invariant: targets must sum to 100
// within tolerance. The engine itself never rejects a model, it normalizes.
func (m ModelPortfolio) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("model portfolio name is missing")
	}
	if len(m.Stocks) == 0 {
		return fmt.Errorf("model portfolio %q has no stocks", m.Name)
	}
	seen := make(map[string]struct{}, len(m.Stocks))
	for _, s := range m.Stocks {
		symbol := NormalizeSymbol(s.Symbol)
		if symbol == "" {
			return fmt.Errorf("model portfolio %q has a stock with no symbol", m.Name)
		}
		if s.Target < 0 {
			return fmt.Errorf("model portfolio %q: target for %s must not be negative, got %s", m.Name, symbol, s.Target)
		}
		if _, dup := seen[symbol]; dup {
			return fmt.Errorf("model portfolio %q lists %s twice", m.Name, symbol)
		}
		seen[symbol] = struct{}{}
	}
	if sum := m.TargetSum(); !sum.Equal(100) {
		return fmt.Errorf("model portfolio %q targets sum to %s, want 100%%", m.Name, sum)
	}
	return nil
}

// Normalized returns a copy of the model whose targets are scaled by
// 100/total so they sum to exactly 100. A model whose targets already sum
// to 100 (within tolerance), or whose total is not positive, is returned
// unchanged.
func (m ModelPortfolio) Normalized() ModelPortfolio {
	total := m.TargetSum()
	if total <= 0 || total.Equal(100) {
		return m
	}
	scaled := m
	scaled.Stocks = make([]ModelStock, len(m.Stocks))
	for i, s := range m.Stocks {
		scaled.Stocks[i] = ModelStock{Symbol: s.Symbol, Target: s.Target * 100 / total}
	}
	return scaled
}

// Stock returns the target line for a symbol, false if the model does not
// hold it.
func (m ModelPortfolio) Stock(symbol string) (ModelStock, bool) {
	symbol = NormalizeSymbol(symbol)
	for _, s := range m.Stocks {
		if NormalizeSymbol(s.Symbol) == symbol {
			return s, true
		}
	}
	return ModelStock{}, false
}

// MarshalJSON implements the json.Marshaler interface for ModelPortfolio.
func (m ModelPortfolio) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", m.Name)
	w.Append("stocks", m.Stocks)
	if !m.Created.IsZero() {
		w.Append("createdAt", m.Created)
	}
	if !m.Updated.IsZero() {
		w.Append("updatedAt", m.Updated)
	}
	return w.MarshalJSON()
}
