package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	tests := []struct {
		page, perPage, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{5, 3, 12},
		{0, 10, 0},  // page below 1 behaves as page 1
		{-3, 10, 0}, // so does anything negative
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, offset(tt.page, tt.perPage))
	}
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, isDuplicate(errors.New("Error 1062 (23000): Duplicate entry 'a@jwt.com' for key 'user.email'")))
	assert.False(t, isDuplicate(errors.New("Error 1146 (42S02): Table 'pizza.user' doesn't exist")))
	assert.False(t, isDuplicate(nil))
}
