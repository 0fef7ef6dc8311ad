package domain

import "time"

// BucketRef identifies a retention run by the UTC day its window ends on
type BucketRef struct{ Year, Month, Day int }

// UTC returns the time.Time for the BucketRef in UTC
func (b BucketRef) UTC() time.Time {
	return time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
}
