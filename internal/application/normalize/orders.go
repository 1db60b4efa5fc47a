package normalize

import (
	"github.com/smartretail/pipeline/internal/domain/retail"
	"github.com/smartretail/pipeline/internal/infrastructure/source"
)

// NormalizeOrders cleans the orders snapshot. Orders outside the run window
// are counted separately from rejections: they are valid records that are
// simply not in scope.
func NormalizeOrders(raw []source.RawOrder, window retail.Window) ([]retail.Order, *SourceManifest) {
	manifest := newSourceManifest("orders")
	orders := make([]retail.Order, 0, len(raw))
	seen := make(map[int64]bool, len(raw))

	for _, r := range raw {
		if r.OrderID == 0 {
			manifest.reject(ReasonMissingKey)
			continue
		}
		if seen[r.OrderID] {
			manifest.reject(ReasonDuplicateKey)
			continue
		}

		date, err := retail.ParseDate(r.OrderDate)
		if err != nil {
			manifest.reject(ReasonBadDate)
			continue
		}
		if r.ProductID <= 0 {
			manifest.reject(ReasonBadProductID)
			continue
		}

		quantity, ok := parseCount(r.Quantity)
		if !ok {
			manifest.reject(ReasonBadNumber)
			continue
		}
		amount, ok := parseAmount(r.TotalAmount)
		if !ok {
			manifest.reject(ReasonBadNumber)
			continue
		}
		if quantity < 0 || amount.IsNegative() {
			manifest.reject(ReasonNegativeValue)
			continue
		}

		if !window.Contains(date) {
			manifest.OutOfWindow++
			continue
		}

		country := r.Country
		if country == "" {
			country = "Unknown"
		}

		order := retail.Order{
			OrderID:     r.OrderID,
			OrderDate:   date,
			Country:     country,
			ProductID:   int(r.ProductID),
			Quantity:    quantity,
			TotalAmount: amount,
		}
		if err := order.Validate(); err != nil {
			manifest.reject(ReasonBadNumber)
			continue
		}

		seen[r.OrderID] = true
		orders = append(orders, order)
		manifest.Processed++
	}

	return orders, manifest
}
