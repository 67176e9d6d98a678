package weather

// Kind classifies a free-text search query.
type Kind string

const (
	KindZip     Kind = "zip"
	KindCity    Kind = "city"
	KindInvalid Kind = "invalid"
)

// ValidationResult is the outcome of classifying raw search input.
// Sanitized holds the trimmed query, or "" when the input is invalid.
type ValidationResult struct {
	Kind      Kind   `json:"kind"`
	Sanitized string `json:"sanitized"`
}

// RawSample is a single 3-hour forecast entry as delivered by the provider.
// Timestamp is unix seconds; LocalText is the provider's "YYYY-MM-DD HH:MM:SS"
// rendering of the same instant, emitted without timezone metadata.
type RawSample struct {
	Timestamp   int64   `json:"dt"`
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Pop         float64 `json:"pop"` // precipitation probability, 0-1
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	LocalText   string  `json:"dtTxt"`
}

// HourlyRecord is one normalized 3-hour slot ready for display.
// Temperatures and wind are rounded to integers; Pop is a 0-100 percentage.
type HourlyRecord struct {
	Time        string `json:"time"`
	Temp        int    `json:"temp"`
	FeelsLike   int    `json:"feelsLike"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
	Condition   string `json:"condition"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Pop         int    `json:"pop"`
}

// DaySummary aggregates all samples falling on one local calendar day.
// Date is the YYYY-MM-DD key; Hourly preserves sample order and is never
// empty for a summary built from at least one sample.
type DaySummary struct {
	Date        string         `json:"date"`
	DayName     string         `json:"dayName"`
	TempHigh    int            `json:"tempHigh"`
	TempLow     int            `json:"tempLow"`
	Condition   string         `json:"condition"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Humidity    int            `json:"humidity"`
	WindSpeed   int            `json:"windSpeed"`
	Hourly      []HourlyRecord `json:"hourly"`
}

// ForecastResponse is what the fetch layer hands to the aggregator:
// the resolved location name plus the flat, time-ordered sample list.
type ForecastResponse struct {
	Location string      `json:"location"`
	Samples  []RawSample `json:"samples"`
}

// LookupResult is the unit published to callers after a successful search.
type LookupResult struct {
	Query    string       `json:"query"`
	Location string       `json:"location"`
	Days     []DaySummary `json:"days"`
}
