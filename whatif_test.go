package folio

import "testing"

func TestSimulate(t *testing.T) {
	s := techFinance(t)
	model := growth(t, s)
	current := Aggregate(s.Accounts(), s.Mapping(), s.Prices(), s.Categories())
	target := ModelAllocation(model, s.Mapping(), s.Categories())

	got := Simulate([]Trade{
		{Category: "tech", Action: Buy, Amount: USD(500)},
		{Category: "finance", Action: Sell, Amount: USD(150)},
	}, current, s.TotalValue(), target, s.Categories())

	// 4750 + 500 - 150 = 5100; tech 1900+500, finance 650-150.
	wantMoney(t, "total", got.TotalValue, USD(5100))
	wantPercent(t, "tech", got.Allocation["tech"], Percent(100*2400.0/5100.0))
	wantPercent(t, "finance", got.Allocation["finance"], Percent(100*500.0/5100.0))
	wantPercent(t, "tech deviation", got.Deviations["tech"], got.Allocation["tech"]-80)
}

func TestSimulateSellCap(t *testing.T) {
	s := techFinance(t)
	model := growth(t, s)
	current := Aggregate(s.Accounts(), s.Mapping(), s.Prices(), s.Categories())
	target := ModelAllocation(model, s.Mapping(), s.Categories())

	// Finance holds 650; selling 10000 removes only what is held.
	got := Simulate([]Trade{
		{Category: "finance", Action: Sell, Amount: USD(10000)},
	}, current, s.TotalValue(), target, s.Categories())

	wantMoney(t, "total", got.TotalValue, USD(4100))
	wantPercent(t, "finance", got.Allocation["finance"], 0)
	if got.Allocation["finance"] < 0 {
		t.Fatalf("finance went negative: %s", got.Allocation["finance"])
	}
}

func TestSimulateSellEverything(t *testing.T) {
	s := techFinance(t)
	model := growth(t, s)
	current := Aggregate(s.Accounts(), s.Mapping(), s.Prices(), s.Categories())
	target := ModelAllocation(model, s.Mapping(), s.Categories())

	trades := []Trade{
		{Category: "tech", Action: Sell, Amount: USD(99999)},
		{Category: "finance", Action: Sell, Amount: USD(99999)},
		{Category: Uncategorized, Action: Sell, Amount: USD(99999)},
	}
	got := Simulate(trades, current, s.TotalValue(), target, s.Categories())
	wantMoney(t, "total", got.TotalValue, USD(0))
	for id, p := range got.Allocation {
		wantPercent(t, id, p, 0)
	}
}

func TestSimulateIsRederivable(t *testing.T) {
	s := techFinance(t)
	model := growth(t, s)
	current := Aggregate(s.Accounts(), s.Mapping(), s.Prices(), s.Categories())
	target := ModelAllocation(model, s.Mapping(), s.Categories())

	trades := []Trade{{Category: "tech", Action: Buy, Amount: USD(300)}}
	first := Simulate(trades, current, s.TotalValue(), target, s.Categories())
	second := Simulate(trades, current, s.TotalValue(), target, s.Categories())
	for id := range first.Allocation {
		wantPercent(t, id, second.Allocation[id], first.Allocation[id])
	}
	wantMoney(t, "total", second.TotalValue, first.TotalValue)
}

func TestSimulateIgnoresUnknownCategory(t *testing.T) {
	s := techFinance(t)
	model := growth(t, s)
	current := Aggregate(s.Accounts(), s.Mapping(), s.Prices(), s.Categories())
	target := ModelAllocation(model, s.Mapping(), s.Categories())

	got := Simulate([]Trade{
		{Category: "crypto", Action: Buy, Amount: USD(1000)},
	}, current, s.TotalValue(), target, s.Categories())
	wantMoney(t, "total", got.TotalValue, USD(4750))
}
