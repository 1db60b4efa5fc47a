package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// flexString accepts a JSON string or number. The traffic export is produced
// by a third party and has carried both representations for the same field.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type trafficEntry struct {
	Date      flexString `json:"date"`
	Pageviews flexString `json:"pageviews"`
	Sessions  flexString `json:"sessions"`
	Source    flexString `json:"source"`
}

// TrafficLoader reads the web-traffic JSON export, an array of daily entries.
type TrafficLoader struct {
	path string
}

// NewTrafficLoader creates a TrafficLoader for the given file.
func NewTrafficLoader(path string) *TrafficLoader {
	return &TrafficLoader{path: path}
}

// Load decodes every traffic entry from the export.
func (l *TrafficLoader) Load(ctx context.Context) ([]RawTraffic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("load web traffic: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var entries []trafficEntry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("load web traffic: decode %q: %w", l.path, err)
	}

	traffic := make([]RawTraffic, len(entries))
	for i, e := range entries {
		traffic[i] = RawTraffic{
			Date:      string(e.Date),
			Pageviews: string(e.Pageviews),
			Sessions:  string(e.Sessions),
			Source:    string(e.Source),
		}
	}
	return traffic, nil
}
