package report

import (
	"fmt"
	"strings"

	"mensa-cli/internal/openmensa"
)

// columnHeaders is the fixed column set of a meal table. The first and
// the last column are the wrap candidates.
var columnHeaders = []string{"Category", "Meal", "Student", "Employee", "Guest", "Notes"}

// displayRow is a meal reduced to exactly the rendered columns. Rows
// exist only for the duration of one table.
type displayRow struct {
	Category string
	Name     string
	Student  string
	Employee string
	Guest    string
	Notes    string
}

func newDisplayRow(m openmensa.Meal) displayRow {
	return displayRow{
		Category: m.Category,
		Name:     m.Name,
		Student:  formatPrice(m.Prices.Students),
		Employee: formatPrice(m.Prices.Employees),
		Guest:    formatPrice(m.Prices.Others),
		Notes:    strings.Join(m.Notes, ", "),
	}
}

func (r displayRow) columns() []string {
	return []string{r.Category, r.Name, r.Student, r.Employee, r.Guest, r.Notes}
}

func formatPrice(price *float64) string {
	if price == nil {
		return ""
	}
	return fmt.Sprintf("%.2f €", *price)
}
