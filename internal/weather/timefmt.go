package weather

import (
	"fmt"
	"time"
)

const (
	dateKeyLayout   = "2006-01-02"
	localTextLayout = "2006-01-02 15:04:05"
)

// DayName returns "Today" when dateKey falls on the same local calendar day
// as now, otherwise the full weekday name for that date. The key is parsed at
// local noon so DST transitions cannot shift it across midnight.
func DayName(dateKey string, now time.Time, loc *time.Location) string {
	day, err := time.ParseInLocation(dateKeyLayout, dateKey, loc)
	if err != nil {
		return dateKey
	}
	noon := day.Add(12 * time.Hour)

	local := now.In(loc)
	if noon.Year() == local.Year() && noon.Month() == local.Month() && noon.Day() == local.Day() {
		return "Today"
	}
	return noon.Weekday().String()
}

// To12HourClock renders a "YYYY-MM-DD HH:MM:SS" string as a 12-hour clock
// time with no leading zero on the hour, e.g. "3:00 PM". Midnight is
// "12:00 AM", noon "12:00 PM". Unparseable input is returned as-is.
func To12HourClock(s string) string {
	t, err := time.Parse(localTextLayout, s)
	if err != nil {
		return s
	}
	return t.Format("3:04 PM")
}

// IconURL builds the provider's image URL for a condition icon code.
func IconURL(code string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", code)
}
