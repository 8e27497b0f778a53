package testutil

import "time"

// FixedDay is the calendar day fixture-backed tests play on.
var FixedDay = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
