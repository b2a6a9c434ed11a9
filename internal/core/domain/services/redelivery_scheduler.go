package services

import "time"

// redeliveryHour is the local hour of day redelivery attempts start at.
const redeliveryHour = 9

// RedeliveryScheduler is a domain service computing when a failed delivery is
// attempted again: the morning of the next business day, in the customer's
// local time. Saturday and Sunday are skipped; a Friday failure is retried on
// Monday.
type RedeliveryScheduler struct{}

// NewRedeliveryScheduler creates a new RedeliveryScheduler instance.
func NewRedeliveryScheduler() RedeliveryScheduler {
	return RedeliveryScheduler{}
}

// NextAttempt returns the next redelivery slot after failedAt.
func (s RedeliveryScheduler) NextAttempt(failedAt time.Time) time.Time {
	next := failedAt.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}

	return time.Date(next.Year(), next.Month(), next.Day(),
		redeliveryHour, 0, 0, 0, failedAt.Location())
}
