package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"mensa-cli/internal/openmensa"
	"mensa-cli/internal/table"
)

// MealSource is the part of the meal lookup service the renderer needs.
type MealSource interface {
	MealsOn(ctx context.Context, canteenID int, date string) ([]openmensa.Meal, error)
}

// Renderer prints one meal table per canteen to out.
type Renderer struct {
	meals MealSource
	out   io.Writer
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(meals MealSource, out io.Writer) *Renderer {
	return &Renderer{meals: meals, out: out}
}

// Render fetches and prints meals for every canteen, strictly in the
// given order. The first failed fetch aborts the remaining canteens;
// canteens already printed stay printed. A canteen without meals still
// gets its header and an empty table.
func (r *Renderer) Render(ctx context.Context, canteens []openmensa.Canteen, date time.Time) error {
	day := date.Format(dateLayout)

	for _, canteen := range canteens {
		meals, err := r.meals.MealsOn(ctx, canteen.ID, day)
		if err != nil {
			return &FetchError{Canteen: canteen.Name, Err: err}
		}

		rows := make([][]string, 0, len(meals))
		for _, meal := range meals {
			rows = append(rows, newDisplayRow(meal).columns())
		}

		fmt.Fprintln(r.out, canteen.Name)
		fmt.Fprintln(r.out, table.Render(columnHeaders, rows))
	}

	return nil
}
