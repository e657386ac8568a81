package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInWarranty(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -100)
	old := time.Now().AddDate(-2, 0, 0)

	assert.False(t, (&Device{}).InWarranty(), "no purchase date means no warranty")
	assert.True(t, (&Device{PurchaseDate: &recent}).InWarranty())
	assert.False(t, (&Device{PurchaseDate: &old}).InWarranty())
}
