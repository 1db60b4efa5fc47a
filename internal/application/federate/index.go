package federate

import (
	"sort"

	"github.com/smartretail/pipeline/internal/domain/retail"
)

// CampaignIndex resolves the campaign active for a product on a date without
// scanning the full campaign set. Campaigns are bucketed by product id and
// kept sorted by start date ascending (name ascending within equal starts),
// so matching an order touches only that product's bucket.
type CampaignIndex struct {
	byProduct map[int][]retail.Campaign
}

// NewCampaignIndex builds the index. The input must already be validated;
// the index assumes every campaign window is ordered.
func NewCampaignIndex(campaigns []retail.Campaign) *CampaignIndex {
	byProduct := make(map[int][]retail.Campaign)
	for _, c := range campaigns {
		byProduct[c.ProductID] = append(byProduct[c.ProductID], c)
	}
	for id := range byProduct {
		bucket := byProduct[id]
		sort.Slice(bucket, func(i, j int) bool {
			if cmp := bucket[i].StartDate.Compare(bucket[j].StartDate); cmp != 0 {
				return cmp < 0
			}
			return bucket[i].Name < bucket[j].Name
		})
	}
	return &CampaignIndex{byProduct: byProduct}
}

// Match returns the campaign covering the product on the given date, or nil.
// When several windows overlap the date, the campaign with the latest start
// date wins (the most recently started promotion); equal starts are broken by
// the lexicographically smallest name. The walk runs from the end of the
// sorted bucket so the first containing campaign is already the winner:
// within one start date the bucket is name-ascending, so the group's smallest
// name is found by scanning the group left-to-right after locating it.
func (idx *CampaignIndex) Match(productID int, date retail.Date) *retail.Campaign {
	bucket := idx.byProduct[productID]

	// Last bucket position whose start date is <= date; campaigns starting
	// after the order date can never contain it.
	hi := sort.Search(len(bucket), func(i int) bool {
		return bucket[i].StartDate.After(date)
	})

	for i := hi - 1; i >= 0; i-- {
		if !bucket[i].Contains(date) {
			continue
		}
		// Winner start date found. Earlier entries with the same start date
		// sort before this one by name, so take the first containing
		// campaign of that group.
		start := bucket[i].StartDate
		winner := i
		for j := i - 1; j >= 0 && bucket[j].StartDate.Equal(start); j-- {
			if bucket[j].Contains(date) {
				winner = j
			}
		}
		c := bucket[winner]
		return &c
	}
	return nil
}

// Products returns the number of distinct products carrying campaigns.
func (idx *CampaignIndex) Products() int {
	return len(idx.byProduct)
}
