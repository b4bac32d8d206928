package folio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mlep/folio/date"
)

// Store is the in-memory aggregate of everything the engine computes over:
// categories, accounts, model portfolios, the stock-category mapping and the
// price snapshot. The engine never mutates a store, it reads snapshots.
type Store struct {
	categories []Category
	accounts   []Account
	models     []ModelPortfolio
	mapping    StockCategoryMap
	prices     PriceMap
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		mapping: make(StockCategoryMap),
		prices:  make(PriceMap),
	}
}

// slug derives a stable identifier from a human name.
func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// Categories returns the declared categories in declaration order.
func (s *Store) Categories() []Category { return s.categories }

// Accounts returns all accounts in declaration order.
func (s *Store) Accounts() []Account { return s.accounts }

// Models returns all model portfolios in declaration order.
func (s *Store) Models() []ModelPortfolio { return s.models }

// Mapping returns the stock-category mapping.
func (s *Store) Mapping() StockCategoryMap { return s.mapping }

// Prices returns the current price snapshot.
func (s *Store) Prices() PriceMap { return s.prices }

// AddCategory declares a new category. The id is derived from the name; the
// uncategorized sentinel is reserved and cannot be declared.
func (s *Store) AddCategory(name string) (Category, error) {
	id := slug(name)
	if id == "" {
		return Category{}, fmt.Errorf("category name is missing")
	}
	if id == Uncategorized {
		return Category{}, fmt.Errorf("category id %q is reserved", Uncategorized)
	}
	if hasCategory(s.categories, id) {
		return Category{}, fmt.Errorf("category %q already exists", id)
	}
	c := Category{ID: id, Name: strings.TrimSpace(name)}
	s.categories = append(s.categories, c)
	return c, nil
}

// DeleteCategory removes a declared category. Historical stock mappings
// keep the dangling id and resolve to uncategorized from then on.
func (s *Store) DeleteCategory(id string) error {
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %q does not exist", id)
}

// MapStock assigns a symbol to a declared category.
func (s *Store) MapStock(symbol, categoryID string) error {
	if NormalizeSymbol(symbol) == "" {
		return fmt.Errorf("symbol is missing")
	}
	if !hasCategory(s.categories, categoryID) {
		return fmt.Errorf("category %q does not exist", categoryID)
	}
	s.mapping.Map(symbol, categoryID)
	return nil
}

// AddAccount declares a new account.
func (s *Store) AddAccount(name string) (Account, error) {
	id := slug(name)
	if id == "" {
		return Account{}, fmt.Errorf("account name is missing")
	}
	for _, a := range s.accounts {
		if a.ID == id {
			return Account{}, fmt.Errorf("account %q already exists", id)
		}
	}
	a := Account{ID: id, Name: strings.TrimSpace(name)}
	s.accounts = append(s.accounts, a)
	return a, nil
}

// Account returns an account by id.
func (s *Store) Account(id string) (*Account, bool) {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return &s.accounts[i], true
		}
	}
	return nil, false
}

// AddPosition records shares of a symbol in an account, merging with an
// existing position for that symbol.
func (s *Store) AddPosition(accountID, symbol string, shares Quantity) error {
	if NormalizeSymbol(symbol) == "" {
		return fmt.Errorf("symbol is missing")
	}
	if shares.IsNegative() {
		return fmt.Errorf("shares must not be negative, got %s", shares)
	}
	a, ok := s.Account(accountID)
	if !ok {
		return fmt.Errorf("account %q does not exist", accountID)
	}
	a.AddShares(symbol, shares)
	return nil
}

// DefineModel creates or updates a model portfolio. Targets must sum to 100
// within tolerance at definition time; the engine still normalizes at use
// time.
func (s *Store) DefineModel(name string, stocks []ModelStock) error {
	m := ModelPortfolio{Name: strings.TrimSpace(name), Stocks: stocks}
	if err := m.Validate(); err != nil {
		return err
	}
	today := date.Today()
	for i := range s.models {
		if s.models[i].Name == m.Name {
			m.Created = s.models[i].Created
			m.Updated = today
			s.models[i] = m
			return nil
		}
	}
	m.Created = today
	m.Updated = today
	s.models = append(s.models, m)
	return nil
}

// Model returns a model portfolio by name. Every suggestion entry point
// maps an absent model to empty output.
func (s *Store) Model(name string) (ModelPortfolio, bool) {
	for _, m := range s.models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelPortfolio{}, false
}

// SetPrice records the current price of a symbol.
func (s *Store) SetPrice(symbol string, price Money) error {
	if NormalizeSymbol(symbol) == "" {
		return fmt.Errorf("symbol is missing")
	}
	if price.IsNegative() {
		return fmt.Errorf("price must not be negative, got %s", price)
	}
	s.prices.Set(symbol, price)
	return nil
}

// Allocation computes the store's current allocation.
func (s *Store) Allocation() AllocationMap {
	return Aggregate(s.accounts, s.mapping, s.prices, s.categories)
}

// TotalValue computes the store's total portfolio value.
func (s *Store) TotalValue() Money {
	return TotalValue(s.accounts, s.prices)
}

// Symbols returns every distinct symbol known to the store, from positions,
// mappings and model portfolios, in first-encounter order.
func (s *Store) Symbols() []string {
	var symbols []string
	seen := make(map[string]struct{})
	add := func(symbol string) {
		symbol = NormalizeSymbol(symbol)
		if symbol == "" {
			return
		}
		if _, ok := seen[symbol]; ok {
			return
		}
		seen[symbol] = struct{}{}
		symbols = append(symbols, symbol)
	}
	for _, a := range s.accounts {
		for _, p := range a.Positions {
			add(p.Symbol)
		}
	}
	for _, m := range s.models {
		for _, st := range m.Stocks {
			add(st.Symbol)
		}
	}
	mapped := make([]string, 0, len(s.mapping))
	for symbol := range s.mapping {
		mapped = append(mapped, symbol)
	}
	sort.Strings(mapped)
	for _, symbol := range mapped {
		add(symbol)
	}
	return symbols
}
