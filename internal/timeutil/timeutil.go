package timeutil

import "time"

// DayLayout is the YYYY-MM-DD key daily games are stored under.
const DayLayout = "2006-01-02"

// ResolveLocation loads the named zone, falling back to UTC when the name is
// empty or unknown.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}

// Day returns the calendar day of now in loc, which is when daily games roll over.
func Day(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DayLayout)
}
