package source

import (
	"context"
	"fmt"

	"github.com/smartretail/pipeline/internal/infrastructure/csvsource"
)

// CampaignLoader reads the marketing-campaign CSV.
type CampaignLoader struct {
	path string
}

// NewCampaignLoader creates a CampaignLoader for the given file.
func NewCampaignLoader(path string) *CampaignLoader {
	return &CampaignLoader{path: path}
}

// Load reads every campaign row from the CSV.
func (l *CampaignLoader) Load(ctx context.Context) ([]RawCampaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, closeFn, err := csvsource.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("load campaigns: %w", err)
	}
	defer closeFn()

	if err := reader.RequireHeaders("campaign_name", "product_id", "start_date", "end_date"); err != nil {
		return nil, fmt.Errorf("load campaigns: %w", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("load campaigns: %w", err)
	}

	campaigns := make([]RawCampaign, len(rows))
	for i, row := range rows {
		campaigns[i] = RawCampaign{
			CampaignName: row.Get("campaign_name"),
			ProductID:    row.Get("product_id"),
			StartDate:    row.Get("start_date"),
			EndDate:      row.Get("end_date"),
		}
	}
	return campaigns, nil
}
