package folio

import "strings"

// Uncategorized is the reserved pseudo-category id. It always exists
// implicitly, is never present in the user-editable category set, and
// collects every position whose symbol has no (or a dangling) mapping.
const Uncategorized = "uncategorized"

// Category is a user-defined asset class used to group symbols for
// allocation comparison.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// categoryIDs returns the deterministic key set of every allocation and
// deviation map: the declared category ids in declaration order, followed by
// the uncategorized sentinel.
func categoryIDs(categories []Category) []string {
	ids := make([]string, 0, len(categories)+1)
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return append(ids, Uncategorized)
}

// hasCategory reports whether id is a declared category.
func hasCategory(categories []Category, id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// StockCategoryMap maps a ticker symbol to a category id. A symbol maps to
// at most one category at a time.
type StockCategoryMap map[string]string

// NormalizeSymbol canonicalizes a ticker symbol for use as a map key.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Map records that symbol belongs to the given category id.
func (m StockCategoryMap) Map(symbol, categoryID string) {
	m[NormalizeSymbol(symbol)] = categoryID
}

// CategoryOf resolves the category of a symbol. An unmapped symbol, or a
// mapping that points to a deleted category, resolves to Uncategorized.
func (m StockCategoryMap) CategoryOf(symbol string, categories []Category) string {
	id, ok := m[NormalizeSymbol(symbol)]
	if !ok || !hasCategory(categories, id) {
		return Uncategorized
	}
	return id
}

// Clone returns an independent copy of the mapping.
func (m StockCategoryMap) Clone() StockCategoryMap {
	c := make(StockCategoryMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
