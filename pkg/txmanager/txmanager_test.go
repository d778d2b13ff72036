package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}
	deadlock := &pq.Error{Code: "40P01"}
	errExecQuery := errors.New("schedule.repository: failed to execute query")

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", serialization, true},
		{"deadlock", deadlock, true},
		{"other pq code", &pq.Error{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
		{
			// 40001 обычно всплывает на COMMIT; обёртка не должна терять драйверную ошибку
			name: "commit-wrapped serialization failure",
			err:  fmt.Errorf("%w: commit: %w", ErrTxFailed, serialization),
			want: true,
		},
		{
			name: "repository-wrapped serialization failure",
			err:  fmt.Errorf("%w: IncrementEnrolled - execute update: %w", errExecQuery, serialization),
			want: true,
		},
		{
			name: "double-wrapped deadlock",
			err: fmt.Errorf("%w: after retry: %w",
				ErrTxFailed,
				fmt.Errorf("%w: Cancel - execute update: %w", errExecQuery, deadlock)),
			want: true,
		},
		{
			name: "wrapped non-retryable",
			err:  fmt.Errorf("%w: commit: %w", ErrTxFailed, errors.New("connection reset")),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
