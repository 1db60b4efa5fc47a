package retail

// Window is the closed as-of interval bounding which orders are in scope for
// a run. The reference deployment covers all of 2024.
type Window struct {
	From Date
	To   Date
}

// Valid reports whether the window bounds are ordered.
func (w Window) Valid() bool {
	return !w.From.IsZero() && !w.To.IsZero() && !w.From.After(w.To)
}

// Contains reports whether the date falls inside the window.
func (w Window) Contains(d Date) bool {
	return !d.Before(w.From) && !d.After(w.To)
}
