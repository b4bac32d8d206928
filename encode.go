package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The store persists as a single JSONL file, one record per line, in a way
// that is human-readable and git-friendly. Every line carries a leading
// "record" discriminator naming its type.

const attrRecord = "record"

const (
	recCategory = "category"
	recMapping  = "mapping"
	recAccount  = "account"
	recModel    = "model"
	recPrice    = "price"
)

// DecodeStore reads a JSONL stream and rebuilds the store. Blank lines are
// skipped; malformed lines fail with their line number.
func DecodeStore(r io.Reader) (*Store, error) {
	s := NewStore()
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var identifier struct {
			Record string `json:"record"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("parse error line %d: not a correct json: %w", i, err)
		}

		var err error
		switch identifier.Record {
		case recCategory:
			var rec struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			}
			if err = json.Unmarshal(line, &rec); err == nil {
				s.categories = append(s.categories, Category{ID: rec.ID, Name: rec.Name})
			}
		case recMapping:
			var rec struct {
				Symbol   string `json:"symbol"`
				Category string `json:"category"`
			}
			if err = json.Unmarshal(line, &rec); err == nil {
				s.mapping.Map(rec.Symbol, rec.Category)
			}
		case recAccount:
			var rec struct {
				ID        string     `json:"id"`
				Name      string     `json:"name"`
				Positions []Position `json:"positions"`
			}
			if err = json.Unmarshal(line, &rec); err == nil {
				s.accounts = append(s.accounts, Account{ID: rec.ID, Name: rec.Name, Positions: rec.Positions})
			}
		case recModel:
			var rec ModelPortfolio
			if err = json.Unmarshal(line, &rec); err == nil {
				s.models = append(s.models, rec)
			}
		case recPrice:
			var rec struct {
				Symbol   string          `json:"symbol"`
				Currency string          `json:"currency"`
				Amount   decimal.Decimal `json:"amount"`
			}
			if err = json.Unmarshal(line, &rec); err == nil {
				if rec.Currency == "" {
					rec.Currency = DefaultCurrency
				}
				s.prices.Set(rec.Symbol, M(rec.Amount, rec.Currency))
			}
		default:
			err = fmt.Errorf("unknown record type %q", identifier.Record)
		}
		if err != nil {
			return nil, fmt.Errorf("parse error line %d: %w", i, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return s, nil
}

// encodeRecord writes a single record line in JSONL format.
func encodeRecord(w io.Writer, record *jsonObjectWriter) error {
	data, err := record.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// EncodeStore persists the store to an io.Writer in JSONL format, in a
// canonical order: categories, mappings, accounts, models, prices.
// Mappings and prices are sorted by symbol so output is reproducible.
func EncodeStore(w io.Writer, s *Store) error {
	decimal.MarshalJSONWithoutQuotes = true

	for _, c := range s.categories {
		var rec jsonObjectWriter
		rec.Append(attrRecord, recCategory)
		rec.Append("id", c.ID)
		rec.Append("name", c.Name)
		if err := encodeRecord(w, &rec); err != nil {
			return err
		}
	}

	symbols := make([]string, 0, len(s.mapping))
	for symbol := range s.mapping {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		var rec jsonObjectWriter
		rec.Append(attrRecord, recMapping)
		rec.Append("symbol", symbol)
		rec.Append("category", s.mapping[symbol])
		if err := encodeRecord(w, &rec); err != nil {
			return err
		}
	}

	for _, a := range s.accounts {
		var rec jsonObjectWriter
		rec.Append(attrRecord, recAccount)
		rec.Append("id", a.ID)
		rec.Append("name", a.Name)
		rec.Append("positions", a.Positions)
		if err := encodeRecord(w, &rec); err != nil {
			return err
		}
	}

	for _, m := range s.models {
		var rec jsonObjectWriter
		rec.Append(attrRecord, recModel)
		rec.EmbedFrom(m)
		if err := encodeRecord(w, &rec); err != nil {
			return err
		}
	}

	symbols = symbols[:0]
	for symbol := range s.prices {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		price := s.prices[symbol]
		var rec jsonObjectWriter
		rec.Append(attrRecord, recPrice)
		rec.Append("symbol", symbol)
		rec.EmbedFrom(price)
		if err := encodeRecord(w, &rec); err != nil {
			return err
		}
	}
	return nil
}
