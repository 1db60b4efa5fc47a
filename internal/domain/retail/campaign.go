package retail

import "errors"

// Record-level validation errors. The normalizer maps these onto rejection
// reasons for the source manifest; they never abort a run.
var (
	ErrMissingOrderID    = errors.New("order id is required")
	ErrMissingOrderDate  = errors.New("order date is required")
	ErrBadProductID      = errors.New("product id must be a positive integer")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrNegativeAmount    = errors.New("total amount cannot be negative")
	ErrMissingName       = errors.New("campaign name is required")
	ErrInvalidWindow     = errors.New("campaign start date is after end date")
	ErrMissingDate       = errors.New("date is required")
	ErrNegativeTraffic   = errors.New("pageviews and sessions cannot be negative")
	ErrNegativeFootfall  = errors.New("footfall cannot be negative")
	ErrMissingTimestamp  = errors.New("timestamp is required")
)

// Campaign is a promotional window for a single product. A campaign is valid
// iff the product id is positive and start date <= end date; invalid campaigns
// are dropped before the join and can never reach a fact row or a view.
type Campaign struct {
	Name      string
	ProductID int
	StartDate Date
	EndDate   Date
}

// Validate checks the campaign validity rule.
func (c *Campaign) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	if c.ProductID <= 0 {
		return ErrBadProductID
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return ErrMissingDate
	}
	if c.StartDate.After(c.EndDate) {
		return ErrInvalidWindow
	}
	return nil
}

// Contains reports whether the campaign window covers the given date.
// The window is a closed interval on both ends.
func (c *Campaign) Contains(d Date) bool {
	return !d.Before(c.StartDate) && !d.After(c.EndDate)
}
