package folio

import "testing"

func TestAggregate(t *testing.T) {
	s := techFinance(t)
	alloc := Aggregate(s.Accounts(), s.Mapping(), s.Prices(), s.Categories())

	// 1500+400 tech, 650 finance, 2200 unmapped, over 4750.
	wantPercent(t, "tech", alloc["tech"], 40)
	wantPercent(t, "finance", alloc["finance"], Percent(100*650.0/4750.0))
	wantPercent(t, Uncategorized, alloc[Uncategorized], Percent(100*2200.0/4750.0))

	var sum Percent
	for _, p := range alloc {
		sum += p
	}
	wantPercent(t, "sum", sum, 100)
}

func TestAggregateEmptyPortfolio(t *testing.T) {
	s := NewStore()
	if _, err := s.AddCategory("Tech"); err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}
	alloc := Aggregate(nil, s.Mapping(), s.Prices(), s.Categories())
	if len(alloc) != 2 {
		t.Fatalf("len(alloc) = %d, want an entry for tech and %s", len(alloc), Uncategorized)
	}
	for id, p := range alloc {
		wantPercent(t, id, p, 0)
	}
}

func TestAggregateUnknownPriceIsZeroValue(t *testing.T) {
	s := techFinance(t)
	delete(s.Prices(), "VTI")
	alloc := Aggregate(s.Accounts(), s.Mapping(), s.Prices(), s.Categories())
	// VTI degrades to a zero-value position, total drops to 2550.
	wantPercent(t, Uncategorized, alloc[Uncategorized], 0)
	wantPercent(t, "tech", alloc["tech"], Percent(100*1900.0/2550.0))
}

func TestModelAllocation(t *testing.T) {
	s := techFinance(t)
	target := ModelAllocation(growth(t, s), s.Mapping(), s.Categories())
	wantPercent(t, "tech", target["tech"], 80)
	wantPercent(t, "finance", target["finance"], 20)
	wantPercent(t, Uncategorized, target[Uncategorized], 0)
}

func TestModelAllocationNormalizes(t *testing.T) {
	s := techFinance(t)
	// Targets sum to 50: the engine scales them by 2 rather than rejecting.
	model := ModelPortfolio{Name: "half", Stocks: []ModelStock{
		{Symbol: "AAPL", Target: 30},
		{Symbol: "JPM", Target: 20},
	}}
	target := ModelAllocation(model, s.Mapping(), s.Categories())
	wantPercent(t, "tech", target["tech"], 60)
	wantPercent(t, "finance", target["finance"], 40)
}

func TestDeviate(t *testing.T) {
	s := techFinance(t)
	model := growth(t, s)
	current := Aggregate(s.Accounts(), s.Mapping(), s.Prices(), s.Categories())
	target := ModelAllocation(model, s.Mapping(), s.Categories())
	devs := Deviate(model, current, s.Mapping(), s.Categories())

	var sum Percent
	for id, d := range devs {
		wantPercent(t, id, d, current[id]-target[id])
		sum += d
	}
	wantPercent(t, "sum", sum, 0)

	// A category held but not modeled is overweight against the model's 0%.
	wantPercent(t, Uncategorized, devs[Uncategorized], Percent(100*2200.0/4750.0))
	if devs["tech"] >= 0 {
		t.Errorf("tech deviation = %s, want underweight", devs["tech"])
	}
}

func TestTotalValue(t *testing.T) {
	s := techFinance(t)
	wantMoney(t, "total", s.TotalValue(), USD(4750))
}
