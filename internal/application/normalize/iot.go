package normalize

import (
	"github.com/smartretail/pipeline/internal/domain/retail"
	"github.com/smartretail/pipeline/internal/infrastructure/source"
)

// NormalizeIoT cleans the sensor stream. Readings stay at timestamp
// granularity here; the federator folds them into per-day aggregates.
func NormalizeIoT(raw []source.RawIoT) ([]retail.IoTReading, *SourceManifest) {
	manifest := newSourceManifest("iot")
	readings := make([]retail.IoTReading, 0, len(raw))

	for _, r := range raw {
		ts, err := retail.ParseTimestamp(r.Timestamp)
		if err != nil {
			manifest.reject(ReasonBadDate)
			continue
		}

		footfall, ok := parseCount(r.Footfall)
		if !ok {
			manifest.reject(ReasonBadNumber)
			continue
		}
		if footfall < 0 {
			manifest.reject(ReasonNegativeValue)
			continue
		}

		temperature, ok := parseFloat(r.Temperature)
		if !ok {
			manifest.reject(ReasonBadNumber)
			continue
		}

		readings = append(readings, retail.IoTReading{
			Timestamp:   ts,
			Footfall:    footfall,
			Temperature: temperature,
		})
		manifest.Processed++
	}

	return readings, manifest
}
