package normalize

import (
	"sort"

	"github.com/smartretail/pipeline/internal/domain/retail"
	"github.com/smartretail/pipeline/internal/infrastructure/source"
)

// NormalizeTraffic cleans the web-traffic export and collapses it to one row
// per calendar date. The export sometimes carries several entries for a day
// (one per traffic source); pageviews and sessions are summed across them.
// The result is sorted by date so downstream output is deterministic.
func NormalizeTraffic(raw []source.RawTraffic) ([]retail.WebTrafficDay, *SourceManifest) {
	manifest := newSourceManifest("web_traffic")
	byDate := make(map[retail.Date]*retail.WebTrafficDay)

	for _, r := range raw {
		date, err := retail.ParseDate(r.Date)
		if err != nil {
			manifest.reject(ReasonBadDate)
			continue
		}

		pageviews, ok := parseCount(r.Pageviews)
		if !ok {
			manifest.reject(ReasonBadNumber)
			continue
		}
		sessions, ok := parseCount(r.Sessions)
		if !ok {
			manifest.reject(ReasonBadNumber)
			continue
		}
		if pageviews < 0 || sessions < 0 {
			manifest.reject(ReasonNegativeValue)
			continue
		}

		day, exists := byDate[date]
		if !exists {
			day = &retail.WebTrafficDay{Date: date, Source: r.Source}
			byDate[date] = day
		}
		day.Pageviews += pageviews
		day.Sessions += sessions
		if day.Source == "" {
			day.Source = r.Source
		}
		manifest.Processed++
	}

	days := make([]retail.WebTrafficDay, 0, len(byDate))
	for _, day := range byDate {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	return days, manifest
}
