// Package output persists a federation result: the fact table and the four
// aggregate views as CSV plus a plain-text run summary. The whole output set
// is published atomically so a failed or cancelled run leaves nothing behind.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/smartretail/pipeline/internal/application/federate"
	"github.com/smartretail/pipeline/internal/domain/retail"
)

// Output file names inside the published directory.
const (
	FactTableFile   = "fact_table.csv"
	DailySalesFile  = "daily_sales.csv"
	CampaignsFile   = "campaign_performance.csv"
	ProductsFile    = "product_performance.csv"
	CountriesFile   = "country_performance.csv"
	SummaryFile     = "run_summary.txt"
)

func writeCSV(dir, name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s row: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeFactTable(dir string, facts []retail.FactRow) error {
	header := []string{
		"order_id", "order_date", "country", "product_id", "quantity", "total_amount",
		"campaign_name", "campaign_start", "campaign_end",
		"pageviews", "sessions", "footfall", "avg_temperature",
	}
	rows := make([][]string, 0, len(facts))
	for i := range facts {
		f := &facts[i]
		row := []string{
			strconv.FormatInt(f.Order.OrderID, 10),
			f.Order.OrderDate.String(),
			f.Order.Country,
			strconv.Itoa(f.Order.ProductID),
			strconv.FormatInt(f.Order.Quantity, 10),
			f.Order.TotalAmount.String(),
			"", "", "", "", "", "", "",
		}
		if f.Campaign != nil {
			row[6] = f.Campaign.Name
			row[7] = f.Campaign.StartDate.String()
			row[8] = f.Campaign.EndDate.String()
		}
		if f.Traffic != nil {
			row[9] = strconv.FormatInt(f.Traffic.Pageviews, 10)
			row[10] = strconv.FormatInt(f.Traffic.Sessions, 10)
		}
		if f.IoT != nil {
			row[11] = strconv.FormatInt(f.IoT.Footfall, 10)
			row[12] = formatFloat(f.IoT.AvgTemperature)
		}
		rows = append(rows, row)
	}
	return writeCSV(dir, FactTableFile, header, rows)
}

func writeDailySales(dir string, daily []retail.DailySalesRow) error {
	header := []string{"date", "revenue", "orders", "quantity"}
	rows := make([][]string, 0, len(daily))
	for _, d := range daily {
		rows = append(rows, []string{
			d.Date.String(),
			d.Revenue.String(),
			strconv.FormatInt(d.Orders, 10),
			strconv.FormatInt(d.Quantity, 10),
		})
	}
	return writeCSV(dir, DailySalesFile, header, rows)
}

func writeCampaigns(dir string, campaigns []retail.CampaignPerformanceRow) error {
	header := []string{"campaign_name", "revenue", "orders"}
	rows := make([][]string, 0, len(campaigns))
	for _, c := range campaigns {
		rows = append(rows, []string{
			c.Name,
			c.Revenue.String(),
			strconv.FormatInt(c.Orders, 10),
		})
	}
	return writeCSV(dir, CampaignsFile, header, rows)
}

func writeProducts(dir string, products []retail.ProductPerformanceRow) error {
	header := []string{"product_id", "revenue", "quantity"}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.Itoa(p.ProductID),
			p.Revenue.String(),
			strconv.FormatInt(p.Quantity, 10),
		})
	}
	return writeCSV(dir, ProductsFile, header, rows)
}

func writeCountries(dir string, countries []retail.CountryPerformanceRow) error {
	header := []string{"country", "revenue", "orders"}
	rows := make([][]string, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, []string{
			c.Country,
			c.Revenue.String(),
			strconv.FormatInt(c.Orders, 10),
		})
	}
	return writeCSV(dir, CountriesFile, header, rows)
}

func writeAll(dir string, result *federate.Result) error {
	if err := writeFactTable(dir, result.Facts); err != nil {
		return err
	}
	if err := writeDailySales(dir, result.Daily); err != nil {
		return err
	}
	if err := writeCampaigns(dir, result.Campaigns); err != nil {
		return err
	}
	if err := writeProducts(dir, result.Products); err != nil {
		return err
	}
	return writeCountries(dir, result.Countries)
}
