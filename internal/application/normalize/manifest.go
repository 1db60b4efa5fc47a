// Package normalize turns raw loader rows into canonical, fully typed retail
// records. Each source is cleaned independently; invalid records are dropped
// and counted with a typed reason so the drop is observable, never silent.
package normalize

import "sort"

// Reason classifies why a record was rejected.
type Reason string

const (
	ReasonBadDate       Reason = "bad_date"
	ReasonBadNumber     Reason = "bad_number"
	ReasonNegativeValue Reason = "negative_value"
	ReasonInvalidWindow Reason = "invalid_campaign_window"
	ReasonBadProductID  Reason = "bad_product_id"
	ReasonMissingKey    Reason = "missing_key"
	ReasonDuplicateKey  Reason = "duplicate_key"
)

// SourceManifest counts the outcome of normalizing one source.
type SourceManifest struct {
	Source      string         `json:"source"`
	Processed   int            `json:"processed"`
	Rejected    int            `json:"rejected"`
	OutOfWindow int            `json:"out_of_window,omitempty"`
	Reasons     map[Reason]int `json:"reasons,omitempty"`
}

func newSourceManifest(source string) *SourceManifest {
	return &SourceManifest{
		Source:  source,
		Reasons: make(map[Reason]int),
	}
}

func (m *SourceManifest) reject(reason Reason) {
	m.Rejected++
	m.Reasons[reason]++
}

// ReasonCounts returns the rejection reasons in a stable order for reporting.
func (m *SourceManifest) ReasonCounts() []ReasonCount {
	counts := make([]ReasonCount, 0, len(m.Reasons))
	for r, n := range m.Reasons {
		counts = append(counts, ReasonCount{Reason: r, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Reason < counts[j].Reason })
	return counts
}

// ReasonCount pairs a rejection reason with its occurrence count.
type ReasonCount struct {
	Reason Reason `json:"reason"`
	Count  int    `json:"count"`
}

// Manifest aggregates the per-source manifests of one run.
type Manifest struct {
	Orders     *SourceManifest `json:"orders"`
	Campaigns  *SourceManifest `json:"campaigns"`
	WebTraffic *SourceManifest `json:"web_traffic"`
	IoT        *SourceManifest `json:"iot"`
}

// TotalRejected sums rejections across all sources.
func (m *Manifest) TotalRejected() int {
	total := 0
	for _, s := range []*SourceManifest{m.Orders, m.Campaigns, m.WebTraffic, m.IoT} {
		if s != nil {
			total += s.Rejected
		}
	}
	return total
}

// TotalProcessed sums processed records across all sources.
func (m *Manifest) TotalProcessed() int {
	total := 0
	for _, s := range []*SourceManifest{m.Orders, m.Campaigns, m.WebTraffic, m.IoT} {
		if s != nil {
			total += s.Processed
		}
	}
	return total
}
