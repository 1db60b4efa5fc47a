package retail

import "time"

// WebTrafficDay is one day of site traffic. After normalization the date is
// unique; the normalizer sums duplicate days from the raw export.
type WebTrafficDay struct {
	Date      Date
	Pageviews int64
	Sessions  int64
	Source    string
}

// Validate checks the invariants required of a normalized traffic day.
func (w *WebTrafficDay) Validate() error {
	if w.Date.IsZero() {
		return ErrMissingDate
	}
	if w.Pageviews < 0 || w.Sessions < 0 {
		return ErrNegativeTraffic
	}
	return nil
}

// IoTReading is a single in-store sensor sample. Many readings arrive per
// day; the federator folds them into one IoTDay before joining.
type IoTReading struct {
	Timestamp   time.Time
	Footfall    int64
	Temperature float64
}

// Validate checks the invariants required of a normalized reading.
func (r *IoTReading) Validate() error {
	if r.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}
	if r.Footfall < 0 {
		return ErrNegativeFootfall
	}
	return nil
}

// Date returns the calendar date the reading belongs to.
func (r *IoTReading) Date() Date {
	return DateOf(r.Timestamp)
}

// IoTDay is the per-date aggregate of sensor readings: footfall summed,
// temperature averaged over the day's readings.
type IoTDay struct {
	Date           Date
	Footfall       int64
	AvgTemperature float64
	Readings       int
}
