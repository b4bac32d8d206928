package folio

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Snapshot is a full-fidelity export of the store and of everything the
// engine computes from it against one model portfolio. It is derived,
// recomputed on every export, never stored.
type Snapshot struct {
	Model       string        `json:"model,omitempty"`
	TotalValue  Money         `json:"totalValue"`
	Categories  []Category    `json:"categories"`
	Accounts    []Account     `json:"accounts"`
	Prices      PriceMap      `json:"prices"`
	Allocation  AllocationMap `json:"allocation"`
	Target      AllocationMap `json:"target,omitempty"`
	Deviations  DeviationMap  `json:"deviations,omitempty"`
	Suggestions []Suggestion  `json:"suggestions,omitempty"`
}

// NewSnapshot computes a snapshot of the store against the named model.
// An absent model name yields a snapshot without deviations or suggestions.
func NewSnapshot(s *Store, modelName string) Snapshot {
	snap := Snapshot{
		TotalValue: s.TotalValue(),
		Categories: s.Categories(),
		Accounts:   s.Accounts(),
		Prices:     s.Prices(),
		Allocation: s.Allocation(),
	}
	model, ok := s.Model(modelName)
	if !ok {
		return snap
	}
	snap.Model = model.Name
	snap.Target = ModelAllocation(model, s.Mapping(), s.Categories())
	snap.Deviations = Deviate(model, snap.Allocation, s.Mapping(), s.Categories())
	snap.Suggestions = SuggestSellBuy(snap.Deviations, s.Categories(), s.Accounts(), s.Mapping(), s.Prices(), model, snap.TotalValue)
	return snap
}

// ExportJSON writes the snapshot as pretty-printed JSON.
func ExportJSON(w io.Writer, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal snapshot: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write snapshot: %w", err)
	}
	return nil
}

// csvField escapes a single CSV field: a field containing a comma, a quote
// or a newline is wrapped in double quotes, with internal quotes doubled.
func csvField(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// csvRow writes one comma-separated row.
func csvRow(w io.Writer, fields ...string) error {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = csvField(f)
	}
	_, err := fmt.Fprintln(w, strings.Join(escaped, ","))
	return err
}

// ExportCSV writes the snapshot as flattened CSV rows. Each row starts with
// its record type: position, category or suggestion.
func ExportCSV(w io.Writer, snap Snapshot) error {
	if err := csvRow(w, "record", "account", "symbol", "category", "action", "shares", "value", "current", "target", "deviation"); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}
	for _, a := range snap.Accounts {
		for _, p := range a.Positions {
			value := snap.Prices.Price(p.Symbol).Mul(p.Shares)
			if err := csvRow(w, "position", a.Name, p.Symbol, "", "", p.Shares.String(), value.String(), "", "", ""); err != nil {
				return fmt.Errorf("cannot write position row: %w", err)
			}
		}
	}
	for _, id := range categoryIDs(snap.Categories) {
		name := id
		for _, c := range snap.Categories {
			if c.ID == id {
				name = c.Name
			}
		}
		if err := csvRow(w, "category", "", "", name, "", "", "", snap.Allocation[id].String(), snap.Target[id].String(), snap.Deviations[id].String()); err != nil {
			return fmt.Errorf("cannot write category row: %w", err)
		}
	}
	for _, s := range snap.Suggestions {
		if err := csvRow(w, "suggestion", "", s.Symbol, s.Category, string(s.Action), fmt.Sprintf("%d", s.Shares), s.Value.String(), s.Current.String(), s.Target.String(), s.Deviation.String()); err != nil {
			return fmt.Errorf("cannot write suggestion row: %w", err)
		}
	}
	return nil
}
