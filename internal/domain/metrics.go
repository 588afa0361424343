package domain

import "time"

// MetricFields are the measurements a daily submission may carry. Raw input
// arrives as strings; anything empty or non-numeric is dropped before
// persistence rather than stored as a zero or null placeholder.
var MetricFields = []string{
	"heartRate",
	"steps",
	"sleepHours",
	"weightKg",
	"systolicBp",
	"diastolicBp",
	"bloodGlucose",
}

// DailyMetricRecord is append-only; the daily gate, not the store, keeps a
// user to at most one record per UTC calendar day.
type DailyMetricRecord struct {
	ID        string
	UserID    string
	Values    map[string]float64
	CreatedAt time.Time
}

// MetricsAwardPoints is the fixed award for the first successful submission
// of a day.
const MetricsAwardPoints = 25
