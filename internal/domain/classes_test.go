package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleSpotsLeft(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		enrolled int
		want     int
		full     bool
	}{
		{"empty class", 10, 0, 10, false},
		{"half full", 10, 5, 5, false},
		{"one spot left", 10, 9, 1, false},
		{"full", 10, 10, 0, true},
		{"over capacity is clamped", 10, 12, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &ClassSchedule{Capacity: tt.capacity, EnrolledCount: tt.enrolled}
			assert.Equal(t, tt.want, s.SpotsLeft())
			assert.Equal(t, tt.full, s.IsFull())
		})
	}
}

func TestScheduleHasStarted(t *testing.T) {
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	s := &ClassSchedule{StartTime: start}

	assert.False(t, s.HasStarted(start.Add(-time.Minute)))
	assert.True(t, s.HasStarted(start))
	assert.True(t, s.HasStarted(start.Add(time.Minute)))
}
