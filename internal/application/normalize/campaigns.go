package normalize

import (
	"github.com/smartretail/pipeline/internal/domain/retail"
	"github.com/smartretail/pipeline/internal/infrastructure/source"
)

// NormalizeCampaigns cleans the marketing CSV. A campaign is kept iff its
// product id is a positive integer, both window dates parse, and the window
// is ordered; everything else is dropped and counted.
func NormalizeCampaigns(raw []source.RawCampaign) ([]retail.Campaign, *SourceManifest) {
	manifest := newSourceManifest("campaigns")
	campaigns := make([]retail.Campaign, 0, len(raw))

	for _, r := range raw {
		if r.CampaignName == "" {
			manifest.reject(ReasonMissingKey)
			continue
		}

		productID, ok := parseProductID(r.ProductID)
		if !ok || productID <= 0 {
			manifest.reject(ReasonBadProductID)
			continue
		}

		start, err := retail.ParseDate(r.StartDate)
		if err != nil {
			manifest.reject(ReasonBadDate)
			continue
		}
		end, err := retail.ParseDate(r.EndDate)
		if err != nil {
			manifest.reject(ReasonBadDate)
			continue
		}
		if start.After(end) {
			manifest.reject(ReasonInvalidWindow)
			continue
		}

		campaigns = append(campaigns, retail.Campaign{
			Name:      r.CampaignName,
			ProductID: productID,
			StartDate: start,
			EndDate:   end,
		})
		manifest.Processed++
	}

	return campaigns, manifest
}
