package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The accepted category set mirrors the CHECK constraint on tickets.category.

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryHardware.Valid())
	assert.True(t, CategorySoftware.Valid())

	assert.False(t, Category("NETWORK").Valid())
	assert.False(t, Category("hardware").Valid())
	assert.False(t, Category("").Valid())
}
