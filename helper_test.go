package folio

import "testing"

// techFinance builds the store used across rebalancing tests: two declared
// categories, one account, a model portfolio and a price snapshot.
//
// Holdings: AAPL 10@150, MSFT 2@200, JPM 5@130, VTI 10@220 (unmapped).
// Model "growth": AAPL 40%, MSFT 40%, JPM 20%. Total value 4750.
func techFinance(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	if _, err := s.AddCategory("Tech"); err != nil {
		t.Fatalf("AddCategory(Tech) error = %v", err)
	}
	if _, err := s.AddCategory("Finance"); err != nil {
		t.Fatalf("AddCategory(Finance) error = %v", err)
	}
	mappings := []struct{ symbol, category string }{
		{"AAPL", "tech"}, {"MSFT", "tech"}, {"JPM", "finance"},
	}
	for _, m := range mappings {
		if err := s.MapStock(m.symbol, m.category); err != nil {
			t.Fatalf("MapStock(%s) error = %v", m.symbol, err)
		}
	}
	if _, err := s.AddAccount("Broker"); err != nil {
		t.Fatalf("AddAccount(Broker) error = %v", err)
	}
	positions := []struct {
		symbol string
		shares float64
		price  float64
	}{
		{"AAPL", 10, 150}, {"MSFT", 2, 200}, {"JPM", 5, 130}, {"VTI", 10, 220},
	}
	for _, p := range positions {
		if err := s.AddPosition("broker", p.symbol, Q(p.shares)); err != nil {
			t.Fatalf("AddPosition(%s) error = %v", p.symbol, err)
		}
		if err := s.SetPrice(p.symbol, USD(p.price)); err != nil {
			t.Fatalf("SetPrice(%s) error = %v", p.symbol, err)
		}
	}
	if err := s.DefineModel("growth", []ModelStock{
		{Symbol: "AAPL", Target: 40},
		{Symbol: "MSFT", Target: 40},
		{Symbol: "JPM", Target: 20},
	}); err != nil {
		t.Fatalf("DefineModel(growth) error = %v", err)
	}
	return s
}

// growth returns the model portfolio of the techFinance store.
func growth(t *testing.T, s *Store) ModelPortfolio {
	t.Helper()
	m, ok := s.Model("growth")
	if !ok {
		t.Fatal("model growth not found")
	}
	return m
}

// wantPercent fails the test when got is not within tolerance of want.
func wantPercent(t *testing.T, label string, got, want Percent) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", label, got, want)
	}
}

// wantMoney fails the test when got differs from want.
func wantMoney(t *testing.T, label string, got, want Money) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", label, got, want)
	}
}
