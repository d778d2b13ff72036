package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCreditPackage(t *testing.T) {
	tests := []struct {
		id          string
		wantCredits int
		wantPrice   float64
		found       bool
	}{
		{"starter", 5, 50, true},
		{"regular", 10, 90, true},
		{"premium", 20, 150, true},
		{"unknown", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			pkg, ok := FindCreditPackage(tt.id)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.wantCredits, pkg.Credits)
				assert.Equal(t, tt.wantPrice, pkg.Price)
			}
		})
	}
}

func TestValidTransactionType(t *testing.T) {
	valid := []TransactionType{
		TransactionCreditPurchase,
		TransactionCreditAdded,
		TransactionCreditDeducted,
		TransactionBookingPayment,
		TransactionBookingRefund,
	}
	for _, tt := range valid {
		assert.True(t, ValidTransactionType(tt), string(tt))
	}

	assert.False(t, ValidTransactionType("refund"))
	assert.False(t, ValidTransactionType(""))
}

func TestTransactionIsDebit(t *testing.T) {
	assert.True(t, (&CreditTransaction{Amount: -5}).IsDebit())
	assert.False(t, (&CreditTransaction{Amount: 5}).IsDebit())
	assert.False(t, (&CreditTransaction{Amount: 0}).IsDebit())
}
