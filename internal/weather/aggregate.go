package weather

import (
	"math"
	"sort"
	"strings"
	"time"
)

// maxForecastDays bounds the output: today (possibly backfilled) plus the
// provider's 5-day horizon.
const maxForecastDays = 6

// Aggregate groups 3-hour forecast samples into local calendar-day summaries.
// Each sample's absolute timestamp is converted to loc before bucketing, so
// late-evening samples land on the correct local day even though the provider
// keys its slots to UTC. Buckets preserve input order; output is sorted by
// date ascending, one summary per distinct day, capped at maxForecastDays.
// An empty sample list yields an empty result, never an error.
func Aggregate(samples []RawSample, now time.Time, loc *time.Location) []DaySummary {
	if len(samples) == 0 {
		return []DaySummary{}
	}

	todayKey := now.In(loc).Format(dateKeyLayout)

	buckets := make(map[string][]RawSample)
	keys := make([]string, 0, maxForecastDays)
	for _, s := range samples {
		k := time.Unix(s.Timestamp, 0).In(loc).Format(dateKeyLayout)
		if _, ok := buckets[k]; !ok {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], s)
	}

	// ISO date keys sort lexicographically in chronological order.
	sort.Strings(keys)

	// A very late-night query can leave today without any sample: the next
	// available 3-hour slot already falls on tomorrow in local time. Backfill
	// a placeholder bucket holding the first raw sample so the first summary
	// always represents the current day.
	if keys[0] > todayKey {
		buckets[todayKey] = []RawSample{samples[0]}
		keys = append([]string{todayKey}, keys...)
	}

	summaries := make([]DaySummary, 0, maxForecastDays)
	for _, k := range keys {
		if len(summaries) >= maxForecastDays {
			break
		}
		summaries = append(summaries, summarizeDay(k, buckets[k], now, loc))
	}
	return summaries
}

// summarizeDay collapses one non-empty bucket into a DaySummary.
func summarizeDay(dateKey string, bucket []RawSample, now time.Time, loc *time.Location) DaySummary {
	high := bucket[0].Temp
	low := bucket[0].Temp
	var sumHumidity, sumWind float64

	for _, s := range bucket {
		if s.Temp > high {
			high = s.Temp
		}
		if s.Temp < low {
			low = s.Temp
		}
		sumHumidity += float64(s.Humidity)
		sumWind += s.WindSpeed
	}

	n := float64(len(bucket))
	rep := representative(bucket)

	hourly := make([]HourlyRecord, 0, len(bucket))
	for _, s := range bucket {
		hourly = append(hourly, toHourly(s))
	}

	return DaySummary{
		Date:        dateKey,
		DayName:     DayName(dateKey, now, loc),
		TempHigh:    roundInt(high),
		TempLow:     roundInt(low),
		Condition:   rep.Condition,
		Description: rep.Description,
		Icon:        rep.Icon,
		Humidity:    roundInt(sumHumidity / n),
		WindSpeed:   roundInt(sumWind / n),
		Hourly:      hourly,
	}
}

// representative picks the sample that supplies the day-level condition:
// the midday slot when present, otherwise the element at index len/2.
// The midday match runs against the provider's
// local-time string rather than the bucketing timezone; see DESIGN.md.
func representative(bucket []RawSample) RawSample {
	for _, s := range bucket {
		if strings.Contains(s.LocalText, "12:00:00") {
			return s
		}
	}
	return bucket[len(bucket)/2]
}

// toHourly normalizes one sample for display.
func toHourly(s RawSample) HourlyRecord {
	return HourlyRecord{
		Time:        To12HourClock(s.LocalText),
		Temp:        roundInt(s.Temp),
		FeelsLike:   roundInt(s.FeelsLike),
		Humidity:    s.Humidity,
		WindSpeed:   roundInt(s.WindSpeed),
		Condition:   s.Condition,
		Description: s.Description,
		Icon:        s.Icon,
		Pop:         popPercent(s.Pop),
	}
}

// popPercent scales a 0-1 precipitation probability to a 0-100 integer.
func popPercent(fraction float64) int {
	pct := roundInt(fraction * 100)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func roundInt(f float64) int {
	return int(math.Round(f))
}
