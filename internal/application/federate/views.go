package federate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/smartretail/pipeline/internal/domain/retail"
)

// The view reducers below are associative, commutative folds over the fact
// table. Decimal accumulators carry revenue; counts use int64. A grouping key
// with no matching rows is simply absent, never a zero-valued entry.

func buildDailySales(facts []retail.FactRow) []retail.DailySalesRow {
	groups := make(map[retail.Date]*retail.DailySalesRow)
	for i := range facts {
		o := &facts[i].Order
		row, ok := groups[o.OrderDate]
		if !ok {
			row = &retail.DailySalesRow{Date: o.OrderDate, Revenue: decimal.Zero}
			groups[o.OrderDate] = row
		}
		row.Revenue = row.Revenue.Add(o.TotalAmount)
		row.Orders++
		row.Quantity += o.Quantity
	}

	rows := make([]retail.DailySalesRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}

func buildCampaignPerformance(facts []retail.FactRow) []retail.CampaignPerformanceRow {
	groups := make(map[string]*retail.CampaignPerformanceRow)
	for i := range facts {
		if facts[i].Campaign == nil {
			continue
		}
		name := facts[i].Campaign.Name
		row, ok := groups[name]
		if !ok {
			row = &retail.CampaignPerformanceRow{Name: name, Revenue: decimal.Zero}
			groups[name] = row
		}
		row.Revenue = row.Revenue.Add(facts[i].Order.TotalAmount)
		row.Orders++
	}

	rows := make([]retail.CampaignPerformanceRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if cmp := rows[i].Revenue.Cmp(rows[j].Revenue); cmp != 0 {
			return cmp > 0
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

func buildProductPerformance(facts []retail.FactRow) []retail.ProductPerformanceRow {
	groups := make(map[int]*retail.ProductPerformanceRow)
	for i := range facts {
		o := &facts[i].Order
		row, ok := groups[o.ProductID]
		if !ok {
			row = &retail.ProductPerformanceRow{ProductID: o.ProductID, Revenue: decimal.Zero}
			groups[o.ProductID] = row
		}
		row.Revenue = row.Revenue.Add(o.TotalAmount)
		row.Quantity += o.Quantity
	}

	rows := make([]retail.ProductPerformanceRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if cmp := rows[i].Revenue.Cmp(rows[j].Revenue); cmp != 0 {
			return cmp > 0
		}
		return rows[i].ProductID < rows[j].ProductID
	})
	return rows
}

func buildCountryPerformance(facts []retail.FactRow) []retail.CountryPerformanceRow {
	groups := make(map[string]*retail.CountryPerformanceRow)
	for i := range facts {
		o := &facts[i].Order
		row, ok := groups[o.Country]
		if !ok {
			row = &retail.CountryPerformanceRow{Country: o.Country, Revenue: decimal.Zero}
			groups[o.Country] = row
		}
		row.Revenue = row.Revenue.Add(o.TotalAmount)
		row.Orders++
	}

	rows := make([]retail.CountryPerformanceRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if cmp := rows[i].Revenue.Cmp(rows[j].Revenue); cmp != 0 {
			return cmp > 0
		}
		return rows[i].Country < rows[j].Country
	})
	return rows
}
