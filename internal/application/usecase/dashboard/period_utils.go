// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"fmt"

	"github.com/manjeet0505/Expense/internal/domain/valueobject"
)

// monthAbbreviations maps month numbers to their three-letter labels.
var monthAbbreviations = [...]string{
	"", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthLabel generates a human-readable label for a month (e.g., "Mar 2025").
func MonthLabel(m valueobject.Month) string {
	return fmt.Sprintf("%s %d", monthAbbreviations[m.Month()], m.Year())
}

// MonthSeries returns the n consecutive months ending with last, oldest first.
func MonthSeries(last valueobject.Month, n int) []valueobject.Month {
	if n <= 0 {
		return nil
	}
	months := make([]valueobject.Month, n)
	for i := 0; i < n; i++ {
		months[i] = last.AddMonths(i - n + 1)
	}
	return months
}
