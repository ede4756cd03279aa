package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheckScale(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"12", true},
		{"0.3333", true},
		{"1.50000000", true},
		{"-2.0001", true},
		{"0.00004", false},
		{"0.33335", false},
		{"-1.00001", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := CheckScale("quantity", decimal.RequireFromString(tt.value))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, KindValidation, KindOf(err))
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), "quantity")
		})
	}
}
