package order

import "context"

// reservation is one committed stock decrement.
type reservation struct {
	productID string
	quantity  int
}

// reservationArena collects the decrements made by one commit pass so they
// can be undone in reverse when the pass fails.
type reservationArena struct {
	entries []reservation
}

func (a *reservationArena) record(productID string, quantity int) {
	a.entries = append(a.entries, reservation{productID: productID, quantity: quantity})
}

func (a *reservationArena) len() int {
	return len(a.entries)
}

// undo releases every recorded reservation, newest first. Release failures
// do not stop the remaining releases.
func (a *reservationArena) undo(ctx context.Context, release func(ctx context.Context, r reservation) error) []error {
	var errs []error
	for i := len(a.entries) - 1; i >= 0; i-- {
		if err := release(ctx, a.entries[i]); err != nil {
			errs = append(errs, err)
		}
	}
	a.entries = nil
	return errs
}
