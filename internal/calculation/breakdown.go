package calculation

import "fmt"

// SplitMonths decomposes a month count into whole years and remaining months.
func SplitMonths(months int) (years, remaining int) {
	return months / 12, months % 12
}

// DescribeDuration renders a month count as "X years and Y months".
func DescribeDuration(months int) string {
	years, remaining := SplitMonths(months)
	return fmt.Sprintf("%d %s and %d %s", years, plural(years, "year", "years"), remaining, plural(remaining, "month", "months"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
