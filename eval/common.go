package eval

import "fmt"

// FormatItemCount returns a short human readable item count
// (e.g. 1k, 100k, 10M).
func FormatItemCount(value int64) string {
	if value >= 1000000000 && value%1000000000 == 0 {
		return fmt.Sprintf("%dG", value/1000000000)
	}
	if value >= 1000000 && value%1000000 == 0 {
		return fmt.Sprintf("%dM", value/1000000)
	}
	if value >= 1000 && value%1000 == 0 {
		return fmt.Sprintf("%dk", value/1000)
	}
	return fmt.Sprintf("%d", value)
}
