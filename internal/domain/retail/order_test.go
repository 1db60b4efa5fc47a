package retail

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderValidate(t *testing.T) {
	valid := Order{
		OrderID:     1001,
		OrderDate:   MustDate("2024-01-15"),
		Country:     "Germany",
		ProductID:   3,
		Quantity:    2,
		TotalAmount: decimal.NewFromInt(49),
	}

	tests := []struct {
		name    string
		mutate  func(*Order)
		wantErr error
	}{
		{"valid order", func(o *Order) {}, nil},
		{"zero quantity is valid", func(o *Order) { o.Quantity = 0 }, nil},
		{"zero amount is valid", func(o *Order) { o.TotalAmount = decimal.Zero }, nil},
		{"missing order id", func(o *Order) { o.OrderID = 0 }, ErrMissingOrderID},
		{"missing order date", func(o *Order) { o.OrderDate = Date{} }, ErrMissingOrderDate},
		{"bad product id", func(o *Order) { o.ProductID = 0 }, ErrBadProductID},
		{"negative quantity", func(o *Order) { o.Quantity = -1 }, ErrNegativeQuantity},
		{"negative amount", func(o *Order) { o.TotalAmount = decimal.NewFromInt(-5) }, ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	w := Window{From: MustDate("2024-01-01"), To: MustDate("2024-12-31")}

	assert.True(t, w.Valid())
	assert.True(t, w.Contains(MustDate("2024-01-01")))
	assert.True(t, w.Contains(MustDate("2024-12-31")))
	assert.True(t, w.Contains(MustDate("2024-06-15")))
	assert.False(t, w.Contains(MustDate("2023-12-31")))
	assert.False(t, w.Contains(MustDate("2025-01-01")))

	assert.False(t, Window{}.Valid())
	assert.False(t, Window{From: MustDate("2024-02-01"), To: MustDate("2024-01-01")}.Valid())
	assert.True(t, Window{From: MustDate("2024-01-01"), To: MustDate("2024-01-01")}.Valid())
}

func TestIoTReadingDate(t *testing.T) {
	ts, err := ParseTimestamp("2024-03-15 08:30:00")
	assert.NoError(t, err)
	r := IoTReading{Timestamp: ts, Footfall: 12, Temperature: 21.5}
	assert.Equal(t, MustDate("2024-03-15"), r.Date())
}
