package retail

import (
	"github.com/shopspring/decimal"
)

// Order is a cleaned sales order from the relational snapshot. Orders are
// immutable once normalized; the federator never mutates them in place.
type Order struct {
	OrderID     int64
	OrderDate   Date
	Country     string
	ProductID   int
	Quantity    int64
	TotalAmount decimal.Decimal
}

// Validate checks the invariants required of a normalized order.
func (o *Order) Validate() error {
	if o.OrderID == 0 {
		return ErrMissingOrderID
	}
	if o.OrderDate.IsZero() {
		return ErrMissingOrderDate
	}
	if o.ProductID <= 0 {
		return ErrBadProductID
	}
	if o.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if o.TotalAmount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}
