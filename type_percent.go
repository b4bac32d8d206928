package folio

import "fmt"

// Percent is a percentage of portfolio value (34.5 means 34.5%).
type Percent float64

// percentTolerance is the epsilon for all percentage comparisons:
// "sums to 100" and "deviation below threshold" checks never use exact
// equality on accumulated floats.
const percentTolerance = 0.01

// Equal compares two percentages within tolerance.
func (p Percent) Equal(q Percent) bool {
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < percentTolerance
}

// Abs returns the absolute value of the percentage.
func (p Percent) Abs() Percent {
	if p < 0 {
		return -p
	}
	return p
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString returns the percentage with an explicit sign.
// 0 is represented as "-".
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
