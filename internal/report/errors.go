package report

import "fmt"

// NotFoundError reports an id-based lookup that matched no canteen.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("canteen %d not found", e.ID)
}

// FetchError reports a failed meal fetch for a single canteen. It
// names the canteen so the user knows where the batch report stopped.
type FetchError struct {
	Canteen string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching meals for %s: %v", e.Canteen, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
