package folio

import "testing"

// investStore builds the buy-only test store: tech holds AAPL 2@100, finance
// holds JPM 8@100, total 1000. Model "split": AAPL 40%, MSFT 20%, JPM 40%.
// Tech is 40 points underweight, finance 40 points overweight.
func investStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	if _, err := s.AddCategory("Tech"); err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}
	if _, err := s.AddCategory("Finance"); err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}
	if err := s.MapStock("AAPL", "tech"); err != nil {
		t.Fatalf("MapStock() error = %v", err)
	}
	if err := s.MapStock("MSFT", "tech"); err != nil {
		t.Fatalf("MapStock() error = %v", err)
	}
	if err := s.MapStock("JPM", "finance"); err != nil {
		t.Fatalf("MapStock() error = %v", err)
	}
	if _, err := s.AddAccount("Broker"); err != nil {
		t.Fatalf("AddAccount() error = %v", err)
	}
	if err := s.AddPosition("broker", "AAPL", Q(2)); err != nil {
		t.Fatalf("AddPosition() error = %v", err)
	}
	if err := s.AddPosition("broker", "JPM", Q(8)); err != nil {
		t.Fatalf("AddPosition() error = %v", err)
	}
	if err := s.SetPrice("AAPL", USD(100)); err != nil {
		t.Fatalf("SetPrice() error = %v", err)
	}
	if err := s.SetPrice("MSFT", USD(50)); err != nil {
		t.Fatalf("SetPrice() error = %v", err)
	}
	if err := s.SetPrice("JPM", USD(100)); err != nil {
		t.Fatalf("SetPrice() error = %v", err)
	}
	if err := s.DefineModel("split", []ModelStock{
		{Symbol: "AAPL", Target: 40},
		{Symbol: "MSFT", Target: 20},
		{Symbol: "JPM", Target: 40},
	}); err != nil {
		t.Fatalf("DefineModel() error = %v", err)
	}
	return s
}

func TestSuggestBuyOnly(t *testing.T) {
	s := investStore(t)
	model := growthByName(t, s, "split")
	plan := SuggestBuyOnly(USD(1000), model, s.Accounts(), s.Categories(), s.Mapping(), s.Prices())

	// Future total is 2000. Tech shortfall is 60%*2000-200 = 1000, shared
	// between AAPL (600) and MSFT (400). Finance is overweight, gets nothing.
	want := []struct {
		symbol string
		shares int64
		value  Money
	}{
		{"AAPL", 6, USD(600)},
		{"MSFT", 8, USD(400)},
	}
	if len(plan.Suggestions) != len(want) {
		t.Fatalf("got %d suggestions, want %d: %+v", len(plan.Suggestions), len(want), plan.Suggestions)
	}
	for i, w := range want {
		g := plan.Suggestions[i]
		if g.Symbol != w.symbol || g.Shares != w.shares || g.Action != Buy {
			t.Errorf("suggestion[%d] = %s %s x%d, want buy %s x%d", i, g.Action, g.Symbol, g.Shares, w.symbol, w.shares)
		}
		wantMoney(t, "value "+w.symbol, g.Value, w.value)
	}
	wantMoney(t, "unspent", plan.Unspent, USD(0))

	if plan.Projection == nil {
		t.Fatal("missing projection")
	}
	wantMoney(t, "projected total", plan.Projection.TotalValue, USD(2000))
	wantPercent(t, "projected tech", plan.Projection.Allocation["tech"], 60)
	wantPercent(t, "projected finance", plan.Projection.Allocation["finance"], 40)
	wantPercent(t, "projected tech deviation", plan.Projection.Deviations["tech"], 0)
}

func TestSuggestBuyOnlyConservation(t *testing.T) {
	s := investStore(t)
	model := growthByName(t, s, "split")
	for _, amount := range []float64{1, 137, 650, 1000, 12345} {
		plan := SuggestBuyOnly(USD(amount), model, s.Accounts(), s.Categories(), s.Mapping(), s.Prices())
		spent := USD(0)
		for _, g := range plan.Suggestions {
			spent = spent.Add(g.Value)
		}
		if spent.GreaterThan(USD(amount)) {
			t.Errorf("amount %v: spent %s exceeds investment", amount, spent)
		}
		wantMoney(t, "spent+unspent", spent.Add(plan.Unspent), USD(amount))
	}
}

func TestSuggestBuyOnlyLeftoverRedistribution(t *testing.T) {
	s := investStore(t)
	model := growthByName(t, s, "split")
	// 650 cannot be split into whole shares proportionally; the remainder
	// goes to the most underweight candidate.
	plan := SuggestBuyOnly(USD(650), model, s.Accounts(), s.Categories(), s.Mapping(), s.Prices())
	spent := USD(0)
	for _, g := range plan.Suggestions {
		spent = spent.Add(g.Value)
	}
	wantMoney(t, "spent", spent, USD(650))
	wantMoney(t, "unspent", plan.Unspent, USD(0))
}

func TestSuggestBuyOnlyNoUnderweight(t *testing.T) {
	s := investStore(t)
	// A model matching the current allocation: nothing is underweight.
	if err := s.DefineModel("mirror", []ModelStock{
		{Symbol: "AAPL", Target: 20},
		{Symbol: "JPM", Target: 80},
	}); err != nil {
		t.Fatalf("DefineModel() error = %v", err)
	}
	model := growthByName(t, s, "mirror")
	plan := SuggestBuyOnly(USD(1000), model, s.Accounts(), s.Categories(), s.Mapping(), s.Prices())
	if len(plan.Suggestions) != 0 {
		t.Fatalf("got %d suggestions, want none: %+v", len(plan.Suggestions), plan.Suggestions)
	}
	if plan.Projection != nil {
		t.Fatal("got a projection without suggestions")
	}
	wantMoney(t, "unspent", plan.Unspent, USD(1000))
}

func TestSuggestBuyOnlyEmptyModel(t *testing.T) {
	s := investStore(t)
	plan := SuggestBuyOnly(USD(1000), ModelPortfolio{}, s.Accounts(), s.Categories(), s.Mapping(), s.Prices())
	if len(plan.Suggestions) != 0 || plan.Projection != nil {
		t.Fatalf("got a plan for an empty model: %+v", plan)
	}
	wantMoney(t, "unspent", plan.Unspent, USD(1000))
}

func TestSuggestBuyOnlySelectedReallocates(t *testing.T) {
	s := investStore(t)
	model := growthByName(t, s, "split")
	// Deselecting MSFT frees its share of the cash for AAPL.
	plan := SuggestBuyOnlySelected(USD(1000), model, s.Accounts(), s.Categories(), s.Mapping(), s.Prices(), []string{"AAPL"})
	if len(plan.Suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1: %+v", len(plan.Suggestions), plan.Suggestions)
	}
	g := plan.Suggestions[0]
	if g.Symbol != "AAPL" {
		t.Fatalf("suggestion = %s, want AAPL", g.Symbol)
	}
	if g.Shares <= 6 {
		t.Errorf("AAPL shares = %d, want more than the unrestricted 6", g.Shares)
	}
}

func TestSuggestBuyOnlySelectedKeepsUnaffordableCategoryShare(t *testing.T) {
	// A category can participate in the split yet suggest nothing because
	// its cash share cannot buy a whole share. Its symbols were never
	// suggested, so they cannot be deselected, and its share must stay
	// reserved rather than flow to the other categories.
	s := NewStore()
	if _, err := s.AddCategory("Tech"); err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}
	if _, err := s.AddCategory("Bonds"); err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}
	if err := s.MapStock("AAPL", "tech"); err != nil {
		t.Fatalf("MapStock() error = %v", err)
	}
	if err := s.MapStock("BND", "bonds"); err != nil {
		t.Fatalf("MapStock() error = %v", err)
	}
	if err := s.SetPrice("AAPL", USD(10)); err != nil {
		t.Fatalf("SetPrice() error = %v", err)
	}
	if err := s.SetPrice("BND", USD(90)); err != nil {
		t.Fatalf("SetPrice() error = %v", err)
	}
	if err := s.DefineModel("half", []ModelStock{
		{Symbol: "AAPL", Target: 50},
		{Symbol: "BND", Target: 50},
	}); err != nil {
		t.Fatalf("DefineModel() error = %v", err)
	}
	model := growthByName(t, s, "half")

	// Empty portfolio, $100 in: bonds gets $50 but one BND share costs $90,
	// so only 5 AAPL shares are bought and $50 stays unspent.
	amount := USD(100)
	unrestricted := SuggestBuyOnly(amount, model, s.Accounts(), s.Categories(), s.Mapping(), s.Prices())
	if len(unrestricted.Suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1: %+v", len(unrestricted.Suggestions), unrestricted.Suggestions)
	}
	if g := unrestricted.Suggestions[0]; g.Symbol != "AAPL" || g.Shares != 5 {
		t.Fatalf("suggestion = %s x%d, want AAPL x5", g.Symbol, g.Shares)
	}
	wantMoney(t, "unspent", unrestricted.Unspent, USD(50))

	selectAll := SuggestBuyOnlySelected(amount, model, s.Accounts(), s.Categories(), s.Mapping(), s.Prices(), []string{"AAPL"})
	if len(selectAll.Suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1: %+v", len(selectAll.Suggestions), selectAll.Suggestions)
	}
	if g := selectAll.Suggestions[0]; g.Symbol != "AAPL" || g.Shares != 5 {
		t.Errorf("suggestion = %s x%d, want AAPL x5", g.Symbol, g.Shares)
	}
	wantMoney(t, "unspent", selectAll.Unspent, USD(50))
}

func TestSuggestBuyOnlySelectedIdempotence(t *testing.T) {
	s := investStore(t)
	model := growthByName(t, s, "split")
	unrestricted := SuggestBuyOnly(USD(1000), model, s.Accounts(), s.Categories(), s.Mapping(), s.Prices())

	var symbols []string
	for _, g := range unrestricted.Suggestions {
		symbols = append(symbols, g.Symbol)
	}
	selectAll := SuggestBuyOnlySelected(USD(1000), model, s.Accounts(), s.Categories(), s.Mapping(), s.Prices(), symbols)
	again := SuggestBuyOnlySelected(USD(1000), model, s.Accounts(), s.Categories(), s.Mapping(), s.Prices(), symbols)

	for _, got := range [][]Suggestion{selectAll.Suggestions, again.Suggestions} {
		if len(got) != len(unrestricted.Suggestions) {
			t.Fatalf("got %d suggestions, want %d", len(got), len(unrestricted.Suggestions))
		}
		for i, g := range got {
			w := unrestricted.Suggestions[i]
			if g.Symbol != w.Symbol || g.Shares != w.Shares {
				t.Errorf("suggestion[%d] = %s x%d, want %s x%d", i, g.Symbol, g.Shares, w.Symbol, w.Shares)
			}
		}
	}
}
