package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithinCancellationWindow(t *testing.T) {
	classStart := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{
			name: "day before class",
			now:  classStart.Add(-24 * time.Hour),
			want: true,
		},
		{
			name: "exactly at the deadline",
			now:  classStart.Add(-CancellationNoticeHours * time.Hour),
			want: true,
		},
		{
			name: "one second past the deadline",
			now:  classStart.Add(-CancellationNoticeHours*time.Hour + time.Second),
			want: false,
		},
		{
			name: "one hour before class",
			now:  classStart.Add(-time.Hour),
			want: false,
		},
		{
			name: "after class start",
			now:  classStart.Add(time.Minute),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinCancellationWindow(classStart, tt.now))
		})
	}
}

func TestBookingStatusChecks(t *testing.T) {
	tests := []struct {
		status        BookingStatus
		confirmed     bool
		cancelled     bool
		canBeCanceled bool
	}{
		{StatusConfirmed, true, false, true},
		{StatusCancelled, false, true, false},
		{StatusAttended, false, false, false},
		{StatusNoShow, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.confirmed, b.IsConfirmed())
			assert.Equal(t, tt.cancelled, b.IsCancelled())
			assert.Equal(t, tt.canBeCanceled, b.CanBeCancelled())
		})
	}
}
