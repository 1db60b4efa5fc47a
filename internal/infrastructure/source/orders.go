package source

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// orderRow maps the snapshot's column names. Textual columns stay strings;
// database/sql converts numeric storage classes to text where the snapshot
// is loosely typed.
type orderRow struct {
	OrderID     int64  `gorm:"column:order_id"`
	OrderDate   string `gorm:"column:order_date"`
	Country     string `gorm:"column:country"`
	ProductID   int64  `gorm:"column:product_id"`
	Quantity    string `gorm:"column:quantity"`
	TotalAmount string `gorm:"column:total_amount"`
}

// OrderLoader reads the orders snapshot table.
type OrderLoader struct {
	db    *gorm.DB
	table string
}

// NewOrderLoader creates an OrderLoader over an open database handle.
func NewOrderLoader(db *gorm.DB, table string) *OrderLoader {
	if table == "" {
		table = "orders"
	}
	return &OrderLoader{db: db, table: table}
}

// Load reads every order row from the snapshot.
func (l *OrderLoader) Load(ctx context.Context) ([]RawOrder, error) {
	var rows []orderRow
	if err := l.db.WithContext(ctx).Table(l.table).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load orders from %q: %w", l.table, err)
	}

	orders := make([]RawOrder, len(rows))
	for i, r := range rows {
		orders[i] = RawOrder{
			OrderID:     r.OrderID,
			OrderDate:   r.OrderDate,
			Country:     r.Country,
			ProductID:   r.ProductID,
			Quantity:    r.Quantity,
			TotalAmount: r.TotalAmount,
		}
	}
	return orders, nil
}
