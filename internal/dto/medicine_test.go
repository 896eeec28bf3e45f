package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpiryDate(t *testing.T) {
	tm, ok := ExpiryDate("2027-03-31").Time()
	assert.True(t, ok)
	assert.Equal(t, 2027, tm.Year())

	tm, ok = ExpiryDate("2027-03-31T10:00:00Z").Time()
	assert.True(t, ok)
	assert.Equal(t, 10, tm.Hour())

	tm, ok = ExpiryDate("").Time()
	assert.True(t, ok)
	assert.Nil(t, tm)

	_, ok = ExpiryDate("31/03/2027").Time()
	assert.False(t, ok)
}
