package services_test

import (
	"testing"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestRedeliveryScheduler_NextAttempt(t *testing.T) {
	scheduler := services.NewRedeliveryScheduler()

	tests := []struct {
		name     string
		failedAt time.Time
		want     time.Time
	}{
		{
			name:     "weekday_failure_retries_next_morning",
			failedAt: time.Date(2026, 9, 1, 16, 45, 0, 0, time.UTC), // Tuesday
			want:     time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC),   // Wednesday 09:00
		},
		{
			name:     "friday_failure_skips_to_monday",
			failedAt: time.Date(2026, 9, 4, 18, 30, 0, 0, time.UTC), // Friday
			want:     time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),   // Monday 09:00
		},
		{
			name:     "saturday_failure_retries_monday",
			failedAt: time.Date(2026, 9, 5, 11, 0, 0, 0, time.UTC), // Saturday
			want:     time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),  // Monday 09:00
		},
		{
			name:     "late_night_failure_still_lands_at_nine",
			failedAt: time.Date(2026, 9, 2, 23, 59, 0, 0, time.UTC), // Wednesday
			want:     time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC),   // Thursday 09:00
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scheduler.NextAttempt(tt.failedAt)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRedeliveryScheduler_KeepsLocation(t *testing.T) {
	scheduler := services.NewRedeliveryScheduler()
	saigon := time.FixedZone("ICT", 7*3600)
	failedAt := time.Date(2026, 9, 1, 20, 0, 0, 0, saigon)

	got := scheduler.NextAttempt(failedAt)

	assert.Equal(t, saigon, got.Location())
	assert.Equal(t, 9, got.Hour())
}
